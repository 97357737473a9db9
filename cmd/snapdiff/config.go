package main

import (
	"fmt"

	"github.com/fwojciec/snapdiff/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage snapdiff configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init [file]",
		Short: "Write a configuration file with default settings",
		Long: `Write a configuration file holding every setting at its default value.
Without an argument the file is written to the --config path. Existing
files are never overwritten.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			if len(args) > 0 {
				path = args[0]
			}
			if err := config.Default().Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	})
	return cmd
}
