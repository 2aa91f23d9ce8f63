package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/expr-lang/expr"
	"github.com/melih-ucgun/decree/internal/adapters/service"
	"github.com/melih-ucgun/decree/internal/config"
	"github.com/melih-ucgun/decree/internal/core"
	"github.com/melih-ucgun/decree/internal/render"
	"github.com/melih-ucgun/decree/internal/state"
)

// Change is the outcome of analyzing one declared service against the live
// filesystem and the recorded state.
type Change struct {
	Unit    string
	Current string // live content, meaningful only when Exists
	Exists  bool
	Desired string
	// Drift means the live file exists, a fingerprint was recorded for it,
	// and the two no longer agree: someone changed the file out-of-band.
	Drift bool
}

// Action names what applying this change does.
func (c Change) Action() string {
	if c.Exists {
		return "update"
	}
	return "create"
}

// Engine ties the analyzer, planner and applier to one target filesystem,
// one service manager and one state store. The state store is owned by the
// caller, which is also responsible for the single Save after a run.
type Engine struct {
	FS       core.FileSystem
	Renderer *render.Renderer
	Manager  service.Manager
	State    *state.Manager
	Logger   core.Logger
	UnitDir  string
	Vars     map[string]string
	Force    bool
}

// Analyze renders the desired content for one declaration and compares it
// with whatever is live. Render errors propagate unchanged: one bad template
// is a configuration error that aborts the run, not a per-service skip.
func (e *Engine) Analyze(svc config.Service) (Change, error) {
	desired, err := e.Renderer.Render(svc.Template, config.MergeVars(e.Vars, svc.Variables))
	if err != nil {
		return Change{}, err
	}

	ch := Change{Unit: svc.Unit, Desired: desired}

	path := filepath.Join(e.UnitDir, svc.Unit)
	if _, err := e.FS.Stat(path); err != nil {
		if os.IsNotExist(err) {
			// never applied and not present: plain create, no drift
			return ch, nil
		}
		return Change{}, err
	}

	live, err := e.FS.ReadFile(path)
	if err != nil {
		return Change{}, fmt.Errorf("could not read unit file %s: %w", path, err)
	}

	ch.Current = string(live)
	ch.Exists = true
	ch.Drift = !e.State.Matches(svc.Unit, ch.Current)
	return ch, nil
}

// Plan analyzes every declaration in input order and returns the changes
// that need applying, in that same order. A unit whose live content already
// equals the rendered content is skipped, drifted or not. One drifted unit
// that does need an update aborts the whole pass unless Force is set:
// nothing gets applied while an unexamined out-of-band modification exists.
func (e *Engine) Plan(services []config.Service) ([]Change, error) {
	var plan []Change

	for _, svc := range services {
		if svc.When != "" {
			ok, err := evalWhen(svc.When, e.whenEnv(svc))
			if err != nil {
				return nil, fmt.Errorf("invalid when expression for %s: %w", svc.Unit, err)
			}
			if !ok {
				e.Logger.Debug("skipping service, when condition is false", "unit", svc.Unit)
				continue
			}
		}

		ch, err := e.Analyze(svc)
		if err != nil {
			return nil, err
		}

		needsUpdate := !ch.Exists || ch.Current != ch.Desired
		if !needsUpdate {
			e.Logger.Debug("service is up to date", "unit", ch.Unit)
			continue
		}

		if ch.Drift && !e.Force {
			return nil, &core.StateOutOfSyncError{Unit: ch.Unit}
		}

		plan = append(plan, ch)
	}

	return plan, nil
}

// Apply executes one planned change: write the unit file verbatim, reload
// the manager daemon, restart the unit, record the new fingerprint in
// memory. A failed step aborts the remaining plan; earlier changes stay
// applied (there is no rollback) and their fingerprints only reach disk
// through the caller's final state Save.
func (e *Engine) Apply(ch Change) error {
	path := filepath.Join(e.UnitDir, ch.Unit)
	if err := e.FS.WriteFile(path, []byte(ch.Desired), 0644); err != nil {
		return fmt.Errorf("could not write unit file %s: %w", path, err)
	}
	e.Logger.Debug("wrote unit file", "path", path)

	if err := e.Manager.ReloadDaemon(); err != nil {
		return err
	}

	if err := e.Manager.Restart(ch.Unit); err != nil {
		return err
	}

	e.State.Record(ch.Unit, ch.Desired)
	return nil
}

func (e *Engine) whenEnv(svc config.Service) map[string]interface{} {
	return map[string]interface{}{
		"unit": svc.Unit,
		"vars": config.MergeVars(e.Vars, svc.Variables),
	}
}

func evalWhen(code string, env map[string]interface{}) (bool, error) {
	program, err := expr.Compile(code, expr.AsBool())
	if err != nil {
		return false, err
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return false, err
	}

	result, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("expression did not evaluate to a boolean")
	}
	return result, nil
}
