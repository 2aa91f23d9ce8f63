package cmd

import (
	"github.com/spf13/cobra"
)

var planOpts options

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show what apply would change without touching the system",
	Run: func(cmd *cobra.Command, args []string) {
		rt, err := newRuntime(planOpts)
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
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	addConvergeFlags(planCmd, &planOpts)
	planCmd.Flags().BoolVar(&planOpts.force, "force", false, "Include units that were modified outside of decree")
}
