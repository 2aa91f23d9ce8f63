package cmd

import (
	"strings"

	"github.com/melih-ucgun/decree/internal/consts"
	"github.com/melih-ucgun/decree/internal/core"
	"github.com/melih-ucgun/decree/internal/state"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var logStatePath string

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the transaction log of past runs",
	Run: func(cmd *cobra.Command, args []string) {
		fs := core.RealFS{}
		mgr, err := state.NewManager(logStatePath, &fs)
		if err != nil {
			pterm.Error.Println("Failed to load state:", err)
			return
		}

		history := mgr.Transactions()
		if len(history) == 0 {
			pterm.Info.Println("No transaction log found.")
			return
		}

		pterm.DefaultHeader.Println("Transaction Log")

		tableData := [][]string{{"ID", "Date", "Status", "Units"}}

		// Show latest first (reverse iteration)
		for i := len(history) - 1; i >= 0; i-- {
			tx := history[i]

			statusStyle := pterm.NewStyle(pterm.FgGreen)
			if tx.Status != "applied" {
				statusStyle = pterm.NewStyle(pterm.FgRed)
			}

			units := make([]string, 0, len(tx.Changes))
			for _, c := range tx.Changes {
				units = append(units, c.Unit)
			}

			tableData = append(tableData, []string{
				tx.ID,
				tx.Timestamp.Format("2006-01-02 15:04:05"),
				statusStyle.Sprint(tx.Status),
				strings.Join(units, ", "),
			})
		}

		pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.Flags().StringVarP(&logStatePath, "state", "s", consts.GetStateFilePath(), "Path to the state file")
}
