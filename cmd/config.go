package cmd

import (
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/projscan/internal/configs"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective settings as TOML",
		Long: `Prints the settings a scan from the working directory would use, after
merging the user file, the project's .projscan.toml and --config.

Examples:
  # Show the merged settings
  projscan config

  # Start a project settings file from them
  projscan config > .projscan.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			root, err := locateRoot()
			if err != nil {
				return err
			}

			config, err := loadConfig(root, cmd.Flags())
			if err != nil {
				return err
			}
			return configs.WriteTOML(cmd.OutOrStdout(), config)
		},
	}
}
