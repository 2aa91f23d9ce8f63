package service

import (
	"github.com/melih-ucgun/decree/internal/core"
)

type SysVinitManager struct {
	run CommandFunc
}

func NewSysVinitManager(run CommandFunc) *SysVinitManager {
	if run == nil {
		run = core.RunCommand
	}
	return &SysVinitManager{run: run}
}

func (s *SysVinitManager) Name() string {
	return "sysvinit"
}

// ReloadDaemon is a no-op: SysVinit reads init scripts directly on every
// service invocation.
func (s *SysVinitManager) ReloadDaemon() error {
	return nil
}

func (s *SysVinitManager) Restart(unit string) error {
	return execCommand(s.run, "service", unit, "restart")
}

func (s *SysVinitManager) IsActive(unit string) (bool, error) {
	_, err := s.run("service", unit, "status")
	return err == nil, nil
}
