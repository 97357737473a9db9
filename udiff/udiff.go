// Package udiff implements a minimal-edit line differ using go-udiff.
package udiff

import (
	"strings"

	goudiff "github.com/aymanbagabas/go-udiff"
	"github.com/fwojciec/snapdiff"
	"github.com/fwojciec/snapdiff/linediff"
)

// Compile-time interface verification.
var _ snapdiff.LineDiffer = Myers{}

// Myers produces a minimal edit script with the same output contract as
// linediff.Indexed: one hunk spanning both texts. Deleted and unchanged
// lines carry their source line number, inserted lines their target line
// number.
type Myers struct{}

// Diff compares source and target with a minimal edit script.
func (Myers) Diff(source, target string) snapdiff.Hunk {
	s := linediff.SplitLines(source)
	t := linediff.SplitLines(target)

	h := snapdiff.Hunk{
		Header:   snapdiff.HunkHeader(1, len(s), 1, len(t)),
		OldStart: 1,
		OldLines: len(s),
		NewStart: 1,
		NewLines: len(t),
	}

	// Edits are computed on terminated lines. The final newline is handled
	// by linediff.MarkNoNewline once the changes are built.
	before, after := joinLines(s), joinLines(t)
	edits := goudiff.Strings(before, after)
	if len(edits) == 0 {
		h.Changes = make([]snapdiff.Change, 0, len(s))
		for i, line := range s {
			h.Changes = append(h.Changes, snapdiff.Change{Type: snapdiff.ChangeNormal, Content: line, LineNumber: i + 1})
		}
		h.Changes = linediff.MarkNoNewline(h.Changes, source, target)
		return h
	}

	// Context as wide as the file keeps everything in a single hunk.
	span := max(len(s), len(t))
	unified, err := goudiff.ToUnifiedDiff("a", "b", before, edits, span)
	if err != nil {
		return linediff.Indexed{}.Diff(source, target)
	}

	oldLine, newLine := 1, 1
	for _, uh := range unified.Hunks {
		for _, l := range uh.Lines {
			content := strings.TrimSuffix(l.Content, "\n")
			switch l.Kind {
			case goudiff.Delete:
				h.Changes = append(h.Changes, snapdiff.Change{Type: snapdiff.ChangeDelete, Content: content, LineNumber: oldLine})
				oldLine++
			case goudiff.Insert:
				h.Changes = append(h.Changes, snapdiff.Change{Type: snapdiff.ChangeInsert, Content: content, LineNumber: newLine})
				newLine++
			default:
				h.Changes = append(h.Changes, snapdiff.Change{Type: snapdiff.ChangeNormal, Content: content, LineNumber: oldLine})
				oldLine++
				newLine++
			}
		}
	}
	h.Changes = linediff.MarkNoNewline(h.Changes, source, target)
	return h
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
