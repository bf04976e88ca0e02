package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kwebdev/pagegen/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent generator runs",
	Long:  `Shows the runs recorded in the history database configured by history_db.`,
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 10, "maximum number of runs to show")
	historyCmd.Flags().String("db", "", "history database path (overrides config)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := cfg.HistoryDB
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		path = v
	}
	if path == "" {
		return fmt.Errorf("history is disabled\nSet history_db in %s to record runs", cfgFile)
	}

	db, err := history.Open(path)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer db.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := db.RecentRuns(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSTARTED\tSERVICES\tAREAS\tCOMBOS\tFILES\tCHANGED")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
			r.ID[:8], r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Services, r.Areas, r.Combos, r.Pages, r.Changed)
	}
	return tw.Flush()
}
