package core

import (
	"os/exec"
)

// Runner interface defines methods for running commands.
// It allows mocking command execution in tests.
type Runner interface {
	CombinedOutput(cmd *exec.Cmd) ([]byte, error)
}

// RealRunner implements Runner using real os/exec.
type RealRunner struct{}

func (r *RealRunner) CombinedOutput(cmd *exec.Cmd) ([]byte, error) {
	return cmd.CombinedOutput()
}

// CommandRunner is the global runner instance.
// Tests can replace this with a mock.
var CommandRunner Runner = &RealRunner{}

// RunCommand runs a command through the global Runner and returns its
// combined output together with any execution error.
func RunCommand(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	out, err := CommandRunner.CombinedOutput(cmd)
	return string(out), err
}

// IsCommandAvailable reports whether a command is installed on the system.
var IsCommandAvailable = func(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
