package core_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/melih-ucgun/decree/internal/core"
)

func TestErrorTypes(t *testing.T) {
	t.Run("StateOutOfSync message", func(t *testing.T) {
		err := &core.StateOutOfSyncError{Unit: "db.service"}
		want := "Service db.service has been modified outside of this tool"
		if err.Error() != want {
			t.Errorf("Unexpected message: %q", err.Error())
		}
	})

	t.Run("StateOutOfSync matchable through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("planning failed: %w", &core.StateOutOfSyncError{Unit: "db.service"})
		var sync *core.StateOutOfSyncError
		if !errors.As(wrapped, &sync) {
			t.Fatal("errors.As did not match StateOutOfSyncError")
		}
		if sync.Unit != "db.service" {
			t.Errorf("Unexpected unit: %q", sync.Unit)
		}
	})

	t.Run("TemplateNotFound message", func(t *testing.T) {
		err := &core.TemplateNotFoundError{Path: "templates/db.tmpl"}
		if err.Error() != "Template not found: templates/db.tmpl" {
			t.Errorf("Unexpected message: %q", err.Error())
		}
	})

	t.Run("TemplateError unwraps", func(t *testing.T) {
		inner := errors.New("bad syntax")
		err := &core.TemplateError{Name: "db.tmpl", Err: inner}
		if !errors.Is(err, inner) {
			t.Error("TemplateError did not unwrap to the inner error")
		}
	})

	t.Run("CommandError includes output", func(t *testing.T) {
		err := &core.CommandError{Cmd: "systemctl restart db.service", Output: "unit not found\n", Err: errors.New("exit status 5")}
		got := err.Error()
		want := "systemctl restart db.service failed: unit not found: exit status 5"
		if got != want {
			t.Errorf("Unexpected message: %q", got)
		}
	})
}
