package compare

import (
	"context"
	"fmt"

	"github.com/fwojciec/snapdiff"
	"github.com/fwojciec/snapdiff/normalize"
	"go.uber.org/zap"
)

// outcome is the result of comparing one path. A nil diff means the path
// is unchanged.
type outcome struct {
	diff *snapdiff.FileDiff
}

func skip() outcome { return outcome{} }

func changed(d snapdiff.FileDiff) outcome { return outcome{diff: &d} }

// failed turns a retrieval failure into an ordinary-looking diff entry.
func failed(path string, err error) outcome {
	return changed(snapdiff.FileDiff{
		OldPath: path,
		NewPath: path,
		Kind:    snapdiff.DiffError,
		Hunks:   []snapdiff.Hunk{snapdiff.NoteHunk(snapdiff.ChangeNormal, fmt.Sprintf("error reading %s: %v", path, err))},
	})
}

// Reasons a pair of files bypasses line diffing.
const (
	reasonBinary   = "binary"
	reasonTooLarge = "too large"
	reasonNotebook = "notebook, cell-level diff unavailable"
)

func specialReason(recs ...*snapdiff.FileRecord) string {
	for _, r := range recs {
		if r.IsBinary() {
			return reasonBinary
		}
	}
	for _, r := range recs {
		if r.IsLargeFile() {
			return reasonTooLarge
		}
	}
	return reasonNotebook
}

func (e *Engine) compareBoth(ctx context.Context, req snapdiff.ComparisonRequest, path string) outcome {
	src, err := e.read(ctx, req.ProjectID, req.Source, path)
	if err != nil {
		e.logger().Warn("read failed", zap.String("path", path), zap.String("ref", string(req.Source)), zap.Error(err))
		return failed(path, err)
	}
	tgt, err := e.read(ctx, req.ProjectID, req.Target, path)
	if err != nil {
		e.logger().Warn("read failed", zap.String("path", path), zap.String("ref", string(req.Target)), zap.Error(err))
		return failed(path, err)
	}

	if src.Special() || tgt.Special() {
		return special(path, src, tgt, specialReason(src, tgt))
	}

	if isNotebook(path, src, tgt) {
		if e.NotebookIdentity {
			return special(path, src, tgt, reasonNotebook)
		}
		a, errA := normalize.Notebook(src.Content)
		b, errB := normalize.Notebook(tgt.Content)
		if errA != nil || errB != nil {
			return special(path, src, tgt, reasonNotebook)
		}
		return e.modify(path, a, b)
	}

	a, b := src.Content, tgt.Content
	if normalize.IsStructured(path) {
		a, b = normalize.JSON(a, path), normalize.JSON(b, path)
	}
	return e.modify(path, a, b)
}

func (e *Engine) modify(path, source, target string) outcome {
	if source == target {
		return skip()
	}
	h := e.differ().Diff(source, target)
	if !h.HasEdits() {
		return skip()
	}
	return changed(snapdiff.FileDiff{
		OldPath: path,
		NewPath: path,
		Kind:    snapdiff.DiffModify,
		Hunks:   []snapdiff.Hunk{h},
	})
}

// special compares raw content only and never reconstructs lines.
func special(path string, src, tgt *snapdiff.FileRecord, reason string) outcome {
	if snapdiff.SameContent(src, tgt) {
		return skip()
	}
	return changed(snapdiff.FileDiff{
		OldPath: path,
		NewPath: path,
		Kind:    snapdiff.DiffSpecial,
		Hunks:   []snapdiff.Hunk{snapdiff.NoteHunk(snapdiff.ChangeNormal, fmt.Sprintf("%s differs (%s)", path, reason))},
	})
}

// compareOneSide builds the diff of a file that exists only in ref. t is
// ChangeDelete for source-only files and ChangeInsert for target-only ones.
func (e *Engine) compareOneSide(ctx context.Context, projectID string, ref snapdiff.Ref, path string, t snapdiff.ChangeType) outcome {
	d := snapdiff.FileDiff{OldPath: path, NewPath: snapdiff.DevNull, Kind: snapdiff.DiffDelete}
	verb := "deleted"
	if t == snapdiff.ChangeInsert {
		d = snapdiff.FileDiff{OldPath: snapdiff.DevNull, NewPath: path, Kind: snapdiff.DiffAdd}
		verb = "added"
	}

	rec, err := e.read(ctx, projectID, ref, path)
	if err != nil {
		e.logger().Warn("read failed", zap.String("path", path), zap.String("ref", string(ref)), zap.Error(err))
		d.Hunks = []snapdiff.Hunk{snapdiff.NoteHunk(t, fmt.Sprintf("%s %s, content unavailable: %v", path, verb, err))}
		return changed(d)
	}

	if rec.Special() || (e.NotebookIdentity && isNotebook(path, rec)) {
		d.Hunks = []snapdiff.Hunk{snapdiff.NoteHunk(t, fmt.Sprintf("%s %s (%s)", path, verb, specialReason(rec)))}
		return changed(d)
	}

	content, ok := normalized(path, rec)
	if !ok {
		d.Hunks = []snapdiff.Hunk{snapdiff.NoteHunk(t, fmt.Sprintf("%s %s (%s)", path, verb, reasonNotebook))}
		return changed(d)
	}
	var h snapdiff.Hunk
	if t == snapdiff.ChangeInsert {
		h = e.differ().Diff("", content)
	} else {
		h = e.differ().Diff(content, "")
	}
	d.Hunks = []snapdiff.Hunk{}
	if len(h.Changes) > 0 {
		d.Hunks = append(d.Hunks, h)
	}
	return changed(d)
}

// normalized returns the diffable form of a single record. It reports
// false for a notebook that cannot be reduced, matching the two-sided
// fallback in compareBoth.
func normalized(path string, rec *snapdiff.FileRecord) (string, bool) {
	if isNotebook(path, rec) {
		out, err := normalize.Notebook(rec.Content)
		return out, err == nil
	}
	if normalize.IsStructured(path) {
		return normalize.JSON(rec.Content, path), true
	}
	return rec.Content, true
}

func isNotebook(path string, recs ...*snapdiff.FileRecord) bool {
	if normalize.IsNotebook(path) {
		return true
	}
	for _, r := range recs {
		if r.IsNotebook() {
			return true
		}
	}
	return false
}
