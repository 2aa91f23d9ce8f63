package cmd

import (
	"strings"

	"github.com/melih-ucgun/decree/internal/core"
	"github.com/melih-ucgun/decree/internal/engine"
	"github.com/melih-ucgun/decree/internal/state"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var applyOpts options

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Render the declared units and converge the live files",
	Long: `Renders every declared service template, compares the result with the
live unit files and applies the difference after a confirmation. Units that
were modified outside of decree abort the run unless --force is given.`,
	Run: func(cmd *cobra.Command, args []string) {
		rt, err := newRuntime(applyOpts)
		if err != nil {
			fail(err)
		}
		defer rt.Close()

		rt.term.Info("Analyzing changes...")
		plan, err := rt.eng.Plan(rt.cfg.Services)
		if err != nil {
			fail(err)
		}
		if len(plan) == 0 {
			rt.term.Success("No changes needed for any services")
			return
		}

		printPlan(rt.term, plan)
		rt.term.Println()

		if !rt.term.Confirm("Do you want to apply these changes?") {
			rt.term.Println("Operation cancelled.")
			return
		}

		rt.term.Info("Applying changes...")
		tx := state.NewTransaction()
		for _, ch := range plan {
			rt.term.Printf("Updating service: %s\n", ch.Unit)
			if err := rt.eng.Apply(ch); err != nil {
				fail(err)
			}
			tx.Changes = append(tx.Changes, state.TransactionChange{Unit: ch.Unit, Action: ch.Action()})
		}

		tx.Status = "applied"
		rt.st.AddTransaction(tx)
		if err := rt.st.Save(); err != nil {
			fail(err)
		}

		rt.term.Success("All changes applied successfully!")
	},
}

// printPlan shows the per-unit diffs followed by the action list, the same
// report plan prints and apply asks to confirm.
func printPlan(term core.UI, plan []engine.Change) {
	term.Println("Planned changes:")
	for _, ch := range plan {
		term.Println()
		term.Printf("Changes for %s:\n", ch.Unit)
		for _, line := range strings.Split(core.GenerateDiff(ch.Current, ch.Desired), "\n") {
			term.Println(colorDiffLine(line))
		}
	}

	term.Println()
	term.Println("The following actions will be performed:")
	for _, ch := range plan {
		if ch.Drift {
			term.Println(pterm.FgYellow.Sprintf(" ! Override manual changes to: %s", ch.Unit))
		}
		term.Printf(" * Update service unit file: %s\n", ch.Unit)
		term.Println(" * Reload systemd daemon")
		term.Printf(" * Restart service: %s\n", ch.Unit)
	}
}

func colorDiffLine(line string) string {
	switch {
	case strings.HasPrefix(line, "+ "):
		return pterm.FgGreen.Sprint(line)
	case strings.HasPrefix(line, "- "):
		return pterm.FgRed.Sprint(line)
	}
	return line
}

func init() {
	rootCmd.AddCommand(applyCmd)
	addConvergeFlags(applyCmd, &applyOpts)
	applyCmd.Flags().BoolVar(&applyOpts.force, "force", false, "Overwrite units that were modified outside of decree")
	applyCmd.Flags().BoolVarP(&applyOpts.yes, "yes", "y", false, "Apply without asking for confirmation")
}
