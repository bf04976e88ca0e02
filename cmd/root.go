package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kwebdev/pagegen/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "pagegen",
	Short: "Generate local-SEO landing pages from service and area data",
	Long: `pagegen reads data/services.json and data/areas.json and writes a static
landing page for every service, every area and, optionally, every
service-in-area combination. Running pagegen with no subcommand generates
the site.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runGenerate,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		setupLogger(cmd.ErrOrStderr())
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	addGenerateFlags(rootCmd)
}
