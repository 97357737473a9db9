package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/fwojciec/snapdiff"
	"github.com/fwojciec/snapdiff/config"
	"github.com/fwojciec/snapdiff/fs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type diffFlags struct {
	project     string
	workspace   string
	snapshotDir string
	format      string
	algorithm   string
	notebooks   string
	ignore      []string
	maxFileSize int64
	concurrency int
	watch       bool
}

func newDiffCmd(opts *options) *cobra.Command {
	f := &diffFlags{}
	cmd := &cobra.Command{
		Use:   "diff <source> <target>",
		Short: "Compare two snapshots or a snapshot and the workspace",
		Long: `Compare two states of a project. Each side is a snapshot ID or "current"
for the live workspace. Exits 0 when nothing changed, 1 when differences
were found and 2 on error.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			f.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger, err := opts.logger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			req := snapdiff.ComparisonRequest{
				ProjectID: f.project,
				Source:    snapdiff.Ref(args[0]),
				Target:    snapdiff.Ref(args[1]),
			}
			app := NewApp(cfg, cmd.OutOrStdout(), logger)
			if f.watch {
				return watch(cmd.Context(), app, cfg, req, logger)
			}
			diffs, err := app.Run(cmd.Context(), req)
			if err != nil {
				return err
			}
			if len(diffs) > 0 {
				return errChangesFound
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.project, "project", "p", "", "Project directory below the workspace root")
	flags.StringVar(&f.workspace, "workspace", "", "Workspace root directory")
	flags.StringVar(&f.snapshotDir, "snapshot-dir", "", "Directory holding saved snapshots")
	flags.StringVarP(&f.format, "format", "f", "", "Output format (patch, color, jsonl)")
	flags.StringVar(&f.algorithm, "algorithm", "", "Line diff algorithm (indexed, myers)")
	flags.StringVar(&f.notebooks, "notebooks", "", "Notebook handling (normalize, identity)")
	flags.StringArrayVar(&f.ignore, "ignore", nil, "Additional ignore pattern, may be repeated")
	flags.Int64Var(&f.maxFileSize, "max-file-size", 0, "Size in bytes above which files are not line diffed")
	flags.IntVarP(&f.concurrency, "concurrency", "j", 0, "Number of files compared at once")
	flags.BoolVarP(&f.watch, "watch", "w", false, "Re-run the comparison whenever the workspace changes")
	return cmd
}

// apply overrides config values with flags set on the command line.
func (f *diffFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("workspace") {
		cfg.Workspace = f.workspace
	}
	if changed("snapshot-dir") {
		cfg.SnapshotDir = f.snapshotDir
	}
	if changed("format") {
		cfg.Format = f.format
	}
	if changed("algorithm") {
		cfg.Algorithm = f.algorithm
	}
	if changed("notebooks") {
		cfg.Notebooks = f.notebooks
	}
	if changed("ignore") {
		cfg.Ignore = append(cfg.Ignore, f.ignore...)
	}
	if changed("max-file-size") {
		cfg.MaxFileSize = f.maxFileSize
	}
	if changed("concurrency") {
		cfg.Concurrency = f.concurrency
	}
}

// watch prints the comparison once, then again after every burst of
// workspace changes until ctx is cancelled.
func watch(ctx context.Context, app *App, cfg *config.Config, req snapdiff.ComparisonRequest, logger *zap.Logger) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if !req.Source.IsCurrent() && !req.Target.IsCurrent() {
		return errors.New("watch requires one side to be current")
	}

	workspace, ok := app.Engine.Workspace.(*fs.Workspace)
	if !ok {
		return fmt.Errorf("watch needs a local workspace, got %T", app.Engine.Workspace)
	}
	dir, err := workspace.Dir(req.ProjectID)
	if err != nil {
		return err
	}
	w, err := fs.NewWatcher(dir, workspace.Filter)
	if err != nil {
		return err
	}
	defer w.Close()
	w.Logger = logger

	rerun := func() {
		if _, err := app.Run(ctx, req); err != nil && ctx.Err() == nil {
			logger.Error("compare failed", zap.Error(err))
		}
	}
	rerun()
	logger.Info("watching workspace", zap.String("dir", cfg.Workspace), zap.String("project", req.ProjectID))
	return w.Run(ctx, rerun)
}
