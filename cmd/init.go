package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kwebdev/pagegen/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a pagegen configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure pagegen for your site and writes a .pagegen.yml file.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
