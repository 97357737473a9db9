// Package gitdiff writes comparison results as a git-style unified patch
// using go-gitdiff.
package gitdiff

import (
	"io"

	gogitdiff "github.com/bluekeyes/go-gitdiff/gitdiff"
	"github.com/fwojciec/snapdiff"
)

// Compile-time interface verification.
var _ snapdiff.Formatter = (*Formatter)(nil)

// regularFileMode is the mode written for added and deleted files.
const regularFileMode = 0o100644

// Formatter writes FileDiffs as a unified patch.
type Formatter struct{}

// NewFormatter creates a new patch formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format writes one patch section per diff.
func (f *Formatter) Format(w io.Writer, diffs []snapdiff.FileDiff) error {
	for _, d := range diffs {
		if _, err := io.WriteString(w, File(d).String()); err != nil {
			return err
		}
	}
	return nil
}

// File converts a FileDiff into its go-gitdiff representation. Error diffs
// keep their explanatory line as a context-only fragment, which git apply
// rejects but reads well.
func File(d snapdiff.FileDiff) *gogitdiff.File {
	f := &gogitdiff.File{
		OldName: d.OldPath,
		NewName: d.NewPath,
	}
	switch d.Kind {
	case snapdiff.DiffAdd:
		f.IsNew = true
		f.OldName = ""
		f.NewMode = regularFileMode
	case snapdiff.DiffDelete:
		f.IsDelete = true
		f.NewName = ""
		f.OldMode = regularFileMode
	case snapdiff.DiffSpecial:
		// Content that was never line diffed is reported the way git
		// reports binary files.
		f.IsBinary = true
		return f
	}
	for _, h := range d.Hunks {
		if len(h.Changes) == 0 {
			continue
		}
		f.TextFragments = append(f.TextFragments, fragment(h))
	}
	return f
}

// fragment converts a hunk, recomputing counts from its changes so the
// patch stays valid for synthetic hunks.
func fragment(h snapdiff.Hunk) *gogitdiff.TextFragment {
	frag := &gogitdiff.TextFragment{
		Lines: make([]gogitdiff.Line, 0, len(h.Changes)),
	}

	leading := true
	for _, c := range h.Changes {
		// A line without its terminator is written with the
		// "\ No newline at end of file" marker.
		line := gogitdiff.Line{Line: c.Content}
		if !c.NoNewline {
			line.Line += "\n"
		}
		switch c.Type {
		case snapdiff.ChangeInsert:
			line.Op = gogitdiff.OpAdd
			frag.LinesAdded++
			frag.NewLines++
			leading = false
			frag.TrailingContext = 0
		case snapdiff.ChangeDelete:
			line.Op = gogitdiff.OpDelete
			frag.LinesDeleted++
			frag.OldLines++
			leading = false
			frag.TrailingContext = 0
		default:
			line.Op = gogitdiff.OpContext
			frag.OldLines++
			frag.NewLines++
			if leading {
				frag.LeadingContext++
			} else {
				frag.TrailingContext++
			}
		}
		frag.Lines = append(frag.Lines, line)
	}

	if frag.OldLines > 0 {
		frag.OldPosition = int64(max(h.OldStart, 1))
	}
	if frag.NewLines > 0 {
		frag.NewPosition = int64(max(h.NewStart, 1))
	}
	return frag
}
