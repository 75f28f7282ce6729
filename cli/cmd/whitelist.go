package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func whitelist(config *Config) *cobra.Command {
	return &cobra.Command{
		Use:          "whitelist",
		Short:        "Print the currencies shown on the board, in order",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, code := range config.Whitelist {
				fmt.Fprintln(cmd.OutOrStdout(), code)
			}

			return nil
		},
	}
}
