package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRootPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "root",
		Short: "Print the repository root that would be scanned",
		Long: `Prints the nearest directory at or above the working directory that
contains a .git entry. Exits with an error if there is none.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			root, err := locateRoot()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), root)
			return err
		},
	}
}
