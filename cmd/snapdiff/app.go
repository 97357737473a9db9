package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fwojciec/snapdiff"
	"github.com/fwojciec/snapdiff/chroma"
	"github.com/fwojciec/snapdiff/compare"
	"github.com/fwojciec/snapdiff/config"
	"github.com/fwojciec/snapdiff/fs"
	"github.com/fwojciec/snapdiff/gitdiff"
	"github.com/fwojciec/snapdiff/ignore"
	"github.com/fwojciec/snapdiff/jsonl"
	"github.com/fwojciec/snapdiff/linediff"
	"github.com/fwojciec/snapdiff/lipgloss"
	"github.com/fwojciec/snapdiff/udiff"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// App compares two states of a project and writes the result.
type App struct {
	Engine    *compare.Engine
	Formatter snapdiff.Formatter
	Output    io.Writer
}

// Run validates req, compares and formats the result. The returned diffs
// let callers decide the exit status.
func (a *App) Run(ctx context.Context, req snapdiff.ComparisonRequest) ([]snapdiff.FileDiff, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	diffs, err := a.Engine.Compare(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := a.Formatter.Format(a.Output, diffs); err != nil {
		return nil, fmt.Errorf("write output: %w", err)
	}
	return diffs, nil
}

// NewApp wires the local filesystem collaborators described by cfg.
func NewApp(cfg *config.Config, out io.Writer, logger *zap.Logger) *App {
	filter := ignore.New(cfg.Ignore...)

	workspace := fs.NewWorkspace(cfg.Workspace)
	workspace.MaxFileSize = cfg.MaxFileSize
	workspace.Filter = filter

	store := fs.NewSnapshotStore(cfg.SnapshotDir)
	store.MaxFileSize = cfg.MaxFileSize

	engine := compare.NewEngine(store, workspace)
	engine.Filter = filter
	engine.Languages = chroma.NewLanguageDetector()
	engine.Concurrency = cfg.Concurrency
	engine.NotebookIdentity = cfg.Notebooks == config.NotebooksIdentity
	engine.Logger = logger
	engine.Differ = newDiffer(cfg.Algorithm)

	return &App{
		Engine:    engine,
		Formatter: newFormatter(cfg.Format),
		Output:    out,
	}
}

func newDiffer(algorithm string) snapdiff.LineDiffer {
	if algorithm == config.AlgorithmMyers {
		return udiff.Myers{}
	}
	return linediff.Indexed{}
}

func newFormatter(format string) snapdiff.Formatter {
	switch format {
	case config.FormatColor:
		return lipgloss.NewPrinter(lipgloss.WithSummary(true))
	case config.FormatJSONL:
		return jsonl.NewWriter()
	default:
		return gitdiff.NewFormatter()
	}
}

// newLogger builds a console logger writing to w at the given level.
func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}
