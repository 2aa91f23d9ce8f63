package service

import (
	"strings"

	"github.com/melih-ucgun/decree/internal/core"
)

type SystemdManager struct {
	run CommandFunc
}

func NewSystemdManager(run CommandFunc) *SystemdManager {
	if run == nil {
		run = core.RunCommand
	}
	return &SystemdManager{run: run}
}

func (s *SystemdManager) Name() string {
	return "systemd"
}

// ReloadDaemon makes systemd re-read unit definitions so a just-written
// file is picked up before the restart.
func (s *SystemdManager) ReloadDaemon() error {
	return execCommand(s.run, "systemctl", "daemon-reload")
}

func (s *SystemdManager) Restart(unit string) error {
	return execCommand(s.run, "systemctl", "restart", unit)
}

func (s *SystemdManager) IsActive(unit string) (bool, error) {
	// is-active exits non-zero for inactive units; the output still tells
	// us what we need, so the exit status is not an error here.
	out, _ := s.run("systemctl", "is-active", unit)
	return strings.TrimSpace(out) == "active", nil
}
