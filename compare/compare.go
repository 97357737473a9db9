// Package compare implements the snapshot/workspace diff engine.
package compare

import (
	"context"
	"errors"
	"fmt"

	"github.com/fwojciec/snapdiff"
	"github.com/fwojciec/snapdiff/linediff"
	"github.com/fwojciec/snapdiff/reconcile"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Engine compares two states of a project's file tree.
type Engine struct {
	Snapshots snapdiff.SnapshotStore    // Source of saved snapshots
	Workspace snapdiff.Workspace        // Source of the live workspace
	Filter    snapdiff.PathFilter       // Paths excluded from comparison, nil keeps all
	Differ    snapdiff.LineDiffer       // Defaults to linediff.Indexed
	Languages snapdiff.LanguageDetector // Optional language annotation

	// Concurrency bounds how many files are fetched and compared at once.
	// Values below 2 process files one at a time.
	Concurrency int

	// NotebookIdentity skips notebook normalization and only reports
	// whether notebooks changed.
	NotebookIdentity bool

	Logger *zap.Logger
}

// NewEngine returns an Engine reading from the given collaborators.
func NewEngine(snapshots snapdiff.SnapshotStore, workspace snapdiff.Workspace) *Engine {
	return &Engine{
		Snapshots: snapshots,
		Workspace: workspace,
		Differ:    linediff.Indexed{},
	}
}

// Compare lists both sides of req, reconciles them and returns one FileDiff
// per path that differs, ordered by path. Failures to read a single file are
// reported as diffs; only listing failures and cancellation return an error.
func (e *Engine) Compare(ctx context.Context, req snapdiff.ComparisonRequest) ([]snapdiff.FileDiff, error) {
	log := e.logger().With(
		zap.String("project", req.ProjectID),
		zap.String("source", string(req.Source)),
		zap.String("target", string(req.Target)),
	)

	source, err := e.list(ctx, req.ProjectID, req.Source)
	if err != nil {
		return nil, fmt.Errorf("list source %q: %w", req.Source, err)
	}
	target, err := e.list(ctx, req.ProjectID, req.Target)
	if err != nil {
		return nil, fmt.Errorf("list target %q: %w", req.Target, err)
	}

	rec := reconcile.Reconcile(e.Filter, source, target)
	log.Debug("reconciled listings",
		zap.Int("source_only", len(rec.SourceOnly)),
		zap.Int("target_only", len(rec.TargetOnly)),
		zap.Int("both", len(rec.Both)),
	)

	// Each worker writes only its own slot, so order follows rec.Union.
	outcomes := make([]outcome, len(rec.Union))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(e.Concurrency, 1))
	for i, path := range rec.Union {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = e.comparePath(gctx, req, path, rec.Presence(path))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	diffs := make([]snapdiff.FileDiff, 0, len(outcomes))
	for _, o := range outcomes {
		if o.diff == nil {
			continue
		}
		if e.Languages != nil {
			o.diff.Language = e.Languages.DetectFromPath(o.diff.Path())
		}
		diffs = append(diffs, *o.diff)
	}

	log.Info("comparison finished",
		zap.Int("files", len(rec.Union)),
		zap.Int("changed", len(diffs)),
	)
	return diffs, nil
}

func (e *Engine) comparePath(ctx context.Context, req snapdiff.ComparisonRequest, path string, p reconcile.Presence) outcome {
	var o outcome
	switch p {
	case reconcile.Both:
		o = e.compareBoth(ctx, req, path)
	case reconcile.SourceOnly:
		o = e.compareOneSide(ctx, req.ProjectID, req.Source, path, snapdiff.ChangeDelete)
	case reconcile.TargetOnly:
		o = e.compareOneSide(ctx, req.ProjectID, req.Target, path, snapdiff.ChangeInsert)
	default:
		o = skip()
	}

	if o.diff != nil {
		e.logger().Debug("file changed", zap.String("path", path), zap.Stringer("kind", o.diff.Kind))
	}
	return o
}

func (e *Engine) list(ctx context.Context, projectID string, ref snapdiff.Ref) ([]string, error) {
	if ref.IsCurrent() {
		if e.Workspace == nil {
			return nil, errors.New("no workspace configured")
		}
		return e.Workspace.ListFiles(ctx, projectID)
	}
	if e.Snapshots == nil {
		return nil, errors.New("no snapshot store configured")
	}
	return e.Snapshots.ListFiles(ctx, string(ref))
}

func (e *Engine) read(ctx context.Context, projectID string, ref snapdiff.Ref, path string) (*snapdiff.FileRecord, error) {
	var (
		rec *snapdiff.FileRecord
		err error
	)
	switch {
	case ref.IsCurrent() && e.Workspace != nil:
		rec, err = e.Workspace.ReadFile(ctx, projectID, path)
	case !ref.IsCurrent() && e.Snapshots != nil:
		rec, err = e.Snapshots.ReadFile(ctx, string(ref), path)
	default:
		err = errors.New("no collaborator configured")
	}
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.New("no content returned")
	}
	return rec, nil
}

func (e *Engine) differ() snapdiff.LineDiffer {
	if e.Differ == nil {
		return linediff.Indexed{}
	}
	return e.Differ
}

func (e *Engine) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}
