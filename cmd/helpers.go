package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/kwebdev/pagegen/internal/config"
	"github.com/kwebdev/pagegen/internal/history"
	"github.com/kwebdev/pagegen/internal/progress"
	"github.com/kwebdev/pagegen/internal/site"
)

// setupLogger installs the default slog logger. --verbose enables debug logs.
func setupLogger(w io.Writer) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `pagegen init` to create a config file", err)
	}
	return cfg, nil
}

// addGenerateFlags registers the flags shared by the root command, generate
// and serve.
func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().String("data-dir", "", "directory containing services.json and areas.json (overrides config)")
	cmd.Flags().String("output", "", "output directory (overrides config)")
	cmd.Flags().Bool("no-combo", false, "skip service-in-area pages")
	cmd.Flags().Bool("quiet", false, "suppress per-page progress output")
}

// applyGenerateFlags overrides config values from flags and validates the
// result.
func applyGenerateFlags(cmd *cobra.Command, cfg *config.Config) error {
	if v, _ := cmd.Flags().GetString("data-dir"); v != "" {
		cfg.DataDir = v
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.OutputDir = v
	}
	if v, _ := cmd.Flags().GetBool("no-combo"); v {
		cfg.GenerateCombo = false
	}
	return cfg.Validate()
}

// newGenerator builds a generator for cfg. The returned close function
// releases the history ledger, if one was opened.
func newGenerator(cmd *cobra.Command, cfg *config.Config) (*site.Generator, func(), error) {
	g := site.NewGenerator(cfg)
	g.Logger = slog.Default()

	if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
		g.Reporter = progress.NewReporter(cmd.OutOrStdout())
	}

	closeFn := func() {}
	if cfg.HistoryDB != "" {
		db, err := history.Open(cfg.HistoryDB)
		if err != nil {
			return nil, nil, fmt.Errorf("opening history: %w", err)
		}
		g.History = db
		closeFn = func() { db.Close() }
	}
	return g, closeFn, nil
}

func printResult(w io.Writer, cfg *config.Config, res *site.Result) {
	fmt.Fprintf(w, "Generated %d service, %d area, %d hub and %d combo pages in %s\n",
		res.Services, res.Areas, res.Hubs, res.Combos, cfg.OutputDir)
	if !cfg.GenerateCombo {
		fmt.Fprintln(w, "Combo pages disabled")
	}
	if res.Skipped > 0 {
		fmt.Fprintf(w, "Skipped %d invalid records (run `pagegen validate` for details)\n", res.Skipped)
	}
	if res.Assets > 0 {
		fmt.Fprintf(w, "Copied %d static files\n", res.Assets)
	}
	if res.Sitemap {
		fmt.Fprintf(w, "Wrote %s\n", site.SitemapFile)
	}
	if res.ClientConfig {
		fmt.Fprintf(w, "Wrote %s\n", site.ClientConfigFile)
	}
	if res.Changed >= 0 {
		fmt.Fprintf(w, "%d of %d files changed since the previous run\n", res.Changed, len(res.Pages)+boolInt(res.Sitemap)+boolInt(res.ClientConfig))
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
