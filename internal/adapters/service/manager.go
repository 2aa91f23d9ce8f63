package service

import (
	"strings"

	"github.com/melih-ucgun/decree/internal/core"
)

// CommandFunc executes one command and returns its combined output. The
// default is core.RunCommand; remote mode substitutes an SSH-backed function
// and tests substitute a recording one.
type CommandFunc func(name string, args ...string) (string, error)

// Manager is the capability decree needs from the host's service manager:
// re-read unit definitions after a write and restart a unit by name.
// IsActive supports the status view and is best-effort.
type Manager interface {
	Name() string
	ReloadDaemon() error
	Restart(unit string) error
	IsActive(unit string) (bool, error)
}

// Detect picks a manager implementation by probing for its control command.
// Defaults to systemd when nothing is recognizable, since unit files are
// its native format.
func Detect(avail func(name string) bool, run CommandFunc) Manager {
	switch {
	case avail("systemctl"):
		return NewSystemdManager(run)
	case avail("rc-service"):
		return NewOpenRCManager(run)
	case avail("service"):
		return NewSysVinitManager(run)
	default:
		return NewSystemdManager(run)
	}
}

// execCommand runs a manager command and wraps a non-zero exit into a
// CommandError carrying the captured output.
func execCommand(run CommandFunc, name string, args ...string) error {
	out, err := run(name, args...)
	if err != nil {
		return &core.CommandError{
			Cmd:    name + " " + strings.Join(args, " "),
			Output: out,
			Err:    err,
		}
	}
	return nil
}
