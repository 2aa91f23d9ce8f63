package service

import (
	"github.com/melih-ucgun/decree/internal/core"
)

type OpenRCManager struct {
	run CommandFunc
}

func NewOpenRCManager(run CommandFunc) *OpenRCManager {
	if run == nil {
		run = core.RunCommand
	}
	return &OpenRCManager{run: run}
}

func (o *OpenRCManager) Name() string {
	return "openrc"
}

// ReloadDaemon regenerates the OpenRC dependency cache, the closest
// equivalent to a daemon reload.
func (o *OpenRCManager) ReloadDaemon() error {
	return execCommand(o.run, "rc-update", "-u")
}

func (o *OpenRCManager) Restart(unit string) error {
	return execCommand(o.run, "rc-service", unit, "restart")
}

func (o *OpenRCManager) IsActive(unit string) (bool, error) {
	_, err := o.run("rc-service", unit, "status")
	return err == nil, nil
}
