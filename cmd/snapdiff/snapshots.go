package main

import (
	"fmt"

	"github.com/fwojciec/snapdiff/fs"
	"github.com/spf13/cobra"
)

func newSnapshotsCmd(opts *options) *cobra.Command {
	var snapshotDir string
	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "List saved snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("snapshot-dir") {
				cfg.SnapshotDir = snapshotDir
			}
			ids, err := fs.NewSnapshotStore(cfg.SnapshotDir).Snapshots()
			if err != nil {
				return fmt.Errorf("list snapshots: %w", err)
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&snapshotDir, "snapshot-dir", "", "Directory holding saved snapshots")
	return cmd
}
