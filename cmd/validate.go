package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kwebdev/pagegen/internal/catalog"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the data files without writing pages",
	Long: `Loads services.json and areas.json, reports unreadable files and every
record problem, and exits non-zero if any record would be skipped.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().String("data-dir", "", "directory containing services.json and areas.json (overrides config)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("data-dir"); v != "" {
		cfg.DataDir = v
	}

	cat, rep := catalog.Read(cfg.DataDir)
	out := cmd.OutOrStdout()

	invalid := false
	for _, f := range []struct {
		path   string
		status catalog.LoadStatus
		err    error
		count  int
	}{
		{rep.Services.Path, rep.Services.Status, rep.Services.Err, len(rep.Services.Records)},
		{rep.Areas.Path, rep.Areas.Status, rep.Areas.Err, len(rep.Areas.Records)},
	} {
		switch f.status {
		case catalog.StatusLoaded:
			fmt.Fprintf(out, "%s: %d records\n", f.path, f.count)
		case catalog.StatusMissing:
			fmt.Fprintf(out, "%s: missing\n", f.path)
		default:
			invalid = true
			fmt.Fprintf(out, "%s: invalid: %v\n", f.path, f.err)
		}
	}

	for _, is := range rep.Issues {
		fmt.Fprintf(out, "  %s\n", is)
	}

	combos := 0
	if cfg.GenerateCombo {
		combos = len(cat.Services) * len(cat.Areas)
	}
	fmt.Fprintf(out, "%d services, %d areas, %d combo pages would be generated\n",
		len(cat.Services), len(cat.Areas), combos)

	if invalid {
		return fmt.Errorf("data files could not be parsed")
	}
	if catalog.HasSkipped(rep.Issues) {
		return fmt.Errorf("%d issues found, some records would be skipped", len(rep.Issues))
	}
	return nil
}
