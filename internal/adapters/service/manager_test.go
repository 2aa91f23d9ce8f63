package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/melih-ucgun/decree/internal/core"
)

// recordingRun captures every invocation and plays back canned results.
type recordingRun struct {
	Cmds []string
	Out  string
	Err  error
}

func (r *recordingRun) run(name string, args ...string) (string, error) {
	r.Cmds = append(r.Cmds, name+" "+strings.Join(args, " "))
	return r.Out, r.Err
}

func TestSystemdManager(t *testing.T) {
	t.Run("Reload and restart commands", func(t *testing.T) {
		rec := &recordingRun{}
		mgr := NewSystemdManager(rec.run)

		if err := mgr.ReloadDaemon(); err != nil {
			t.Fatalf("ReloadDaemon failed: %v", err)
		}
		if err := mgr.Restart("db.service"); err != nil {
			t.Fatalf("Restart failed: %v", err)
		}

		want := []string{"systemctl daemon-reload", "systemctl restart db.service"}
		if len(rec.Cmds) != len(want) {
			t.Fatalf("Expected %d commands, got %v", len(want), rec.Cmds)
		}
		for i, cmd := range want {
			if rec.Cmds[i] != cmd {
				t.Errorf("Command %d: want %q, got %q", i, cmd, rec.Cmds[i])
			}
		}
	})

	t.Run("Non-zero exit becomes CommandError", func(t *testing.T) {
		rec := &recordingRun{Out: "Failed to restart db.service: Unit not found.\n", Err: errors.New("exit status 5")}
		mgr := NewSystemdManager(rec.run)

		err := mgr.Restart("db.service")
		if err == nil {
			t.Fatal("Expected error, got nil")
		}

		var cmdErr *core.CommandError
		if !errors.As(err, &cmdErr) {
			t.Fatalf("Expected CommandError, got %T", err)
		}
		if cmdErr.Cmd != "systemctl restart db.service" {
			t.Errorf("Unexpected command in error: %q", cmdErr.Cmd)
		}
		if !strings.Contains(cmdErr.Output, "Unit not found") {
			t.Errorf("Output not captured: %q", cmdErr.Output)
		}
	})

	t.Run("IsActive parses output not exit status", func(t *testing.T) {
		rec := &recordingRun{Out: "active\n"}
		mgr := NewSystemdManager(rec.run)

		active, err := mgr.IsActive("db.service")
		if err != nil || !active {
			t.Errorf("Expected active, got %v / %v", active, err)
		}

		rec.Out = "inactive\n"
		rec.Err = errors.New("exit status 3")
		active, err = mgr.IsActive("db.service")
		if err != nil || active {
			t.Errorf("Expected inactive without error, got %v / %v", active, err)
		}
	})
}

func TestSysVinitManager(t *testing.T) {
	rec := &recordingRun{}
	mgr := NewSysVinitManager(rec.run)

	if err := mgr.ReloadDaemon(); err != nil {
		t.Fatalf("ReloadDaemon should be a no-op: %v", err)
	}
	if len(rec.Cmds) != 0 {
		t.Errorf("ReloadDaemon ran commands: %v", rec.Cmds)
	}

	if err := mgr.Restart("db"); err != nil {
		t.Fatalf("Restart failed: %v", err)
	}
	if rec.Cmds[0] != "service db restart" {
		t.Errorf("Unexpected command: %q", rec.Cmds[0])
	}
}

func TestOpenRCManager(t *testing.T) {
	rec := &recordingRun{}
	mgr := NewOpenRCManager(rec.run)

	if err := mgr.ReloadDaemon(); err != nil {
		t.Fatalf("ReloadDaemon failed: %v", err)
	}
	if err := mgr.Restart("db"); err != nil {
		t.Fatalf("Restart failed: %v", err)
	}

	want := []string{"rc-update -u", "rc-service db restart"}
	for i, cmd := range want {
		if rec.Cmds[i] != cmd {
			t.Errorf("Command %d: want %q, got %q", i, cmd, rec.Cmds[i])
		}
	}
}

func TestDetect(t *testing.T) {
	rec := &recordingRun{}

	cases := []struct {
		available map[string]bool
		want      string
	}{
		{map[string]bool{"systemctl": true, "service": true}, "systemd"},
		{map[string]bool{"rc-service": true, "service": true}, "openrc"},
		{map[string]bool{"service": true}, "sysvinit"},
		{map[string]bool{}, "systemd"},
	}

	for _, tc := range cases {
		avail := func(name string) bool { return tc.available[name] }
		mgr := Detect(avail, rec.run)
		if mgr.Name() != tc.want {
			t.Errorf("Detect with %v: want %s, got %s", tc.available, tc.want, mgr.Name())
		}
	}
}
