package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate service, area and combo landing pages",
	Long: `Reads the service and area data files and writes every landing page,
the services and areas hub pages, and, when configured, sitemap.xml and
assets/js/config.js. Existing files are overwritten.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	addGenerateFlags(generateCmd)
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyGenerateFlags(cmd, cfg); err != nil {
		return err
	}

	g, closeFn, err := newGenerator(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	res, err := g.Generate(cmd.Context())
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}
	printResult(cmd.OutOrStdout(), cfg, res)
	return nil
}
