package cmd

import (
	"fmt"
	"os"

	"github.com/melih-ucgun/decree/internal/adapters/service"
	"github.com/melih-ucgun/decree/internal/adapters/ui"
	"github.com/melih-ucgun/decree/internal/config"
	"github.com/melih-ucgun/decree/internal/consts"
	"github.com/melih-ucgun/decree/internal/core"
	"github.com/melih-ucgun/decree/internal/engine"
	"github.com/melih-ucgun/decree/internal/render"
	"github.com/melih-ucgun/decree/internal/state"
	"github.com/melih-ucgun/decree/internal/transport"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// options holds the flag values shared by the converging commands.
type options struct {
	input     string
	statePath string
	templates string
	unitDir   string
	envFile   string
	host      string
	force     bool
	yes       bool
}

func addConvergeFlags(c *cobra.Command, o *options) {
	c.Flags().StringVarP(&o.input, "input", "i", consts.DefaultConfigFile, "Path to the services definition file")
	c.Flags().StringVarP(&o.statePath, "state", "s", consts.GetStateFilePath(), "Path to the state file")
	c.Flags().StringVar(&o.templates, "templates", consts.DefaultTemplatesDir, "Directory holding the unit templates")
	c.Flags().StringVar(&o.unitDir, "unit-dir", consts.DefaultUnitDir, "Directory the rendered unit files are written to")
	c.Flags().StringVar(&o.envFile, "env-file", "", "Dotenv file layered under the config vars")
	c.Flags().StringVar(&o.host, "host", "", "Manage a remote host from the hosts list instead of this machine")
}

// runtime bundles everything a command needs for one run. Templates, config
// and state always live on the machine decree runs on; only the unit files
// and the service manager move to the remote side when --host is given.
type runtime struct {
	cfg    *config.Config
	eng    *engine.Engine
	st     *state.Manager
	term   core.UI
	logger core.Logger
	sftp   *transport.SFTPFS
	ssh    *transport.SSH
}

func (r *runtime) Close() {
	if r.sftp != nil {
		r.sftp.Close()
	}
	if r.ssh != nil {
		r.ssh.Close()
	}
}

func newRuntime(o options) (*runtime, error) {
	if verboseCount > 0 {
		pterm.EnableDebugMessages()
	}
	logger := core.NewDefaultLogger(os.Stderr, core.LevelFromVerbosity(verboseCount))

	cfg, err := config.Load(o.input)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for _, unit := range cfg.DuplicateUnits() {
		logger.Warn(fmt.Sprintf("Unit %s is declared more than once, each declaration is applied in order", unit))
	}

	vars, err := cfg.BaseVars(o.envFile)
	if err != nil {
		return nil, err
	}

	rt := &runtime{cfg: cfg, logger: logger}

	var fs core.FileSystem = &core.RealFS{}
	var run service.CommandFunc = core.RunCommand
	avail := core.IsCommandAvailable

	if o.host != "" {
		h, err := cfg.FindHost(o.host)
		if err != nil {
			return nil, err
		}
		conn, err := transport.Dial(h)
		if err != nil {
			return nil, err
		}
		remoteFS, err := conn.FileSystem()
		if err != nil {
			conn.Close()
			return nil, err
		}
		rt.ssh = conn
		rt.sftp = remoteFS
		fs = remoteFS
		run = conn.Exec
		avail = conn.Available
		logger.Info(fmt.Sprintf("Managing %s (%s)", h.Name, h.Address))
	}

	st, err := state.NewManager(o.statePath, &core.RealFS{})
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.st = st

	mgr := service.Detect(avail, run)
	logger.Debug("detected service manager", "manager", mgr.Name())

	rt.eng = &engine.Engine{
		FS:       fs,
		Renderer: render.New(&core.RealFS{}, o.templates),
		Manager:  mgr,
		State:    st,
		Logger:   logger,
		UnitDir:  o.unitDir,
		Vars:     vars,
		Force:    o.force,
	}

	rt.term = ui.NewPtermUI()
	if o.yes {
		rt.term = &core.AutoApprove{UI: rt.term}
	}

	return rt, nil
}

func fail(err error) {
	pterm.Error.Println(err)
	os.Exit(1)
}
