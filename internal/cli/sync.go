package cli

import (
	"encoding/json"
	"fmt"
	"restwell/internal/core"
	"time"

	"github.com/spf13/cobra"
)

func newSyncCommand(rt *runtime) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch today's and yesterday's Fitbit data",
		Long: `Fetch sleep, heart rate, steps and calories for today and yesterday (UTC),
store both snapshots and record the sync time.

Examples:
  restwell-cli sync          # Print a summary
  restwell-cli sync --json   # Print the full result as JSON`,
		Args: cobra.NoArgs,
		RunE: rt.run(func(cmd *cobra.Command, args []string) error {
			result, err := rt.app.Sync.Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			fmt.Fprintf(out, "Synced at %s\n", result.LastSync.UTC().Format(time.RFC3339))
			printSnapshot(cmd, "Today", result.Today)
			printSnapshot(cmd, "Yesterday", result.Yesterday)
			return nil
		}),
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	return cmd
}

func printSnapshot(cmd *cobra.Command, label string, s *core.DailySnapshot) {
	if s == nil {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%-9s %s  sleep %dm  resting HR %d  steps %d  calories %d\n",
		label, s.Date, s.Sleep.TotalMinutes, s.HeartRate.Resting, s.Steps.Steps, s.Calories.Calories)
}
