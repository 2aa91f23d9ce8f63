package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"atomicgo.dev/cursor"
	"github.com/melih-ucgun/decree/internal/state"
	"github.com/spf13/cobra"
)

var (
	watchOpts     options
	watchInterval string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Converge continuously until interrupted",
	Long: `Re-applies the declared services at a fixed interval. Watch runs
unattended, so confirmations are answered automatically and errors are
logged instead of stopping the loop. Drifted units still abort a pass
unless --force is given.`,
	Run: func(cmd *cobra.Command, args []string) {
		interval, err := time.ParseDuration(watchInterval)
		if err != nil {
			fail(fmt.Errorf("invalid interval %q: %w", watchInterval, err))
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		watchOpts.yes = true
		rt, err := newRuntime(watchOpts)
		if err != nil {
			fail(err)
		}
		defer rt.Close()

		rt.logger.Info("watch started", "interval", interval.String())

		for {
			if err := watchPass(rt); err != nil {
				rt.logger.Error(err.Error())
			}

			countdown(ctx, interval)
			if ctx.Err() != nil {
				rt.logger.Info("watch stopped")
				return
			}
		}
	},
}

func watchPass(rt *runtime) error {
	plan, err := rt.eng.Plan(rt.cfg.Services)
	if err != nil {
		return err
	}
	if len(plan) == 0 {
		rt.logger.Debug("no changes needed")
		return nil
	}

	tx := state.NewTransaction()
	for _, ch := range plan {
		rt.logger.Info(fmt.Sprintf("Updating service: %s", ch.Unit))
		if err := rt.eng.Apply(ch); err != nil {
			return err
		}
		tx.Changes = append(tx.Changes, state.TransactionChange{Unit: ch.Unit, Action: ch.Action()})
	}

	tx.Status = "applied"
	rt.st.AddTransaction(tx)
	return rt.st.Save()
}

// countdown waits out the interval, redrawing the remaining time in place.
func countdown(ctx context.Context, d time.Duration) {
	cursor.Hide()
	defer cursor.Show()

	deadline := time.Now().Add(d)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		remaining := time.Until(deadline).Round(time.Second)
		if remaining <= 0 {
			cursor.StartOfLine()
			cursor.ClearLine()
			return
		}

		cursor.StartOfLine()
		cursor.ClearLine()
		fmt.Printf("Next run in %s", remaining)

		select {
		case <-ctx.Done():
			cursor.StartOfLine()
			cursor.ClearLine()
			return
		case <-ticker.C:
		}
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
	addConvergeFlags(watchCmd, &watchOpts)
	watchCmd.Flags().BoolVar(&watchOpts.force, "force", false, "Overwrite units that were modified outside of decree")
	watchCmd.Flags().StringVar(&watchInterval, "interval", "5m", "Time between runs (e.g. 30s, 5m, 1h)")
}
