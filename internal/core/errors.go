package core

import (
	"fmt"
	"strings"
)

// TemplateNotFoundError is returned when a declared template file does not
// exist in the template directory. It is raised before parsing, so a missing
// file is never reported as a syntax error.
type TemplateNotFoundError struct {
	Path string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("Template not found: %s", e.Path)
}

// TemplateError wraps a parse or render failure of a template that does exist.
type TemplateError struct {
	Name string
	Err  error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("Template error in %s: %v", e.Name, e.Err)
}

func (e *TemplateError) Unwrap() error { return e.Err }

// StateOutOfSyncError is returned when a unit needs an update but its live
// content no longer matches the fingerprint recorded at the last apply.
// It blocks the whole run unless the force flag is set.
type StateOutOfSyncError struct {
	Unit string
}

func (e *StateOutOfSyncError) Error() string {
	return fmt.Sprintf("Service %s has been modified outside of this tool", e.Unit)
}

// CommandError is returned when a service manager invocation exits non-zero.
type CommandError struct {
	Cmd    string
	Output string
	Err    error
}

func (e *CommandError) Error() string {
	out := strings.TrimSpace(e.Output)
	if out == "" {
		return fmt.Sprintf("%s failed: %v", e.Cmd, e.Err)
	}
	return fmt.Sprintf("%s failed: %s: %v", e.Cmd, out, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }
