package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var statusOpts options

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the managed units and how they compare to the recorded state",
	Long: `Lists every unit decree has applied, whether its live file still matches
the recorded fingerprint, and whether the service is active.`,
	Run: func(cmd *cobra.Command, args []string) {
		rt, err := newRuntime(statusOpts)
		if err != nil {
			fail(err)
		}
		defer rt.Close()

		units := rt.st.Units()
		if len(units) == 0 {
			fmt.Println("No services are managed yet. Run decree apply first.")
			return
		}

		if !rt.st.Current.LastRun.IsZero() {
			fmt.Printf("Last run: %s\n\n", rt.st.Current.LastRun.Format(time.RFC822))
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "UNIT\tFINGERPRINT\tFILE\tSERVICE")

		for _, unit := range units {
			fp, _ := rt.st.FingerprintFor(unit)

			file := "missing"
			if data, err := rt.eng.FS.ReadFile(filepath.Join(statusOpts.unitDir, unit)); err == nil {
				if rt.st.Matches(unit, string(data)) {
					file = "in sync"
				} else {
					file = "modified"
				}
			}

			svc := "unknown"
			if active, err := rt.eng.Manager.IsActive(unit); err == nil {
				if active {
					svc = "active"
				} else {
					svc = "inactive"
				}
			}

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", unit, fp[:12], file, svc)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	addConvergeFlags(statusCmd, &statusOpts)
}
