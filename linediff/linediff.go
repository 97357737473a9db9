// Package linediff implements the index-aligned line differ.
package linediff

import (
	"strings"

	"github.com/fwojciec/snapdiff"
)

// Compile-time interface verification.
var _ snapdiff.LineDiffer = Indexed{}

// Indexed compares lines position by position. It is not a minimal edit
// script: one inserted line near the top turns every following line into a
// delete and insert pair. Cost is linear in the number of lines.
type Indexed struct{}

// Diff compares source and target line by line.
func (Indexed) Diff(source, target string) snapdiff.Hunk {
	s := SplitLines(source)
	t := SplitLines(target)
	n := max(len(s), len(t))

	changes := make([]snapdiff.Change, 0, n)
	for i := 0; i < n; i++ {
		line := i + 1
		switch {
		case i >= len(s):
			changes = append(changes, snapdiff.Change{Type: snapdiff.ChangeInsert, Content: t[i], LineNumber: line})
		case i >= len(t):
			changes = append(changes, snapdiff.Change{Type: snapdiff.ChangeDelete, Content: s[i], LineNumber: line})
		case s[i] == t[i]:
			changes = append(changes, snapdiff.Change{Type: snapdiff.ChangeNormal, Content: s[i], LineNumber: line})
		default:
			changes = append(changes,
				snapdiff.Change{Type: snapdiff.ChangeDelete, Content: s[i], LineNumber: line},
				snapdiff.Change{Type: snapdiff.ChangeInsert, Content: t[i], LineNumber: line},
			)
		}
	}

	return snapdiff.Hunk{
		Header:   snapdiff.HunkHeader(1, len(s), 1, len(t)),
		OldStart: 1,
		OldLines: len(s),
		NewStart: 1,
		NewLines: len(t),
		Changes:  MarkNoNewline(changes, source, target),
	}
}

// MarkNoNewline flags the changes holding the final line of a text that
// does not end in a newline. A context line whose newline exists on only
// one side becomes a delete and insert pair, so texts differing only in
// their final newline still have an edit. changes must list old and new
// lines in order, as a single hunk spanning both texts does.
func MarkNoNewline(changes []snapdiff.Change, source, target string) []snapdiff.Change {
	sourceNoNL := source != "" && !strings.HasSuffix(source, "\n")
	targetNoNL := target != "" && !strings.HasSuffix(target, "\n")
	if !sourceNoNL && !targetNoNL {
		return changes
	}

	lastOld, lastNew := -1, -1
	for i, c := range changes {
		if c.Type != snapdiff.ChangeInsert {
			lastOld = i
		}
		if c.Type != snapdiff.ChangeDelete {
			lastNew = i
		}
	}

	out := make([]snapdiff.Change, 0, len(changes)+1)
	newLine := 0
	for i, c := range changes {
		if c.Type != snapdiff.ChangeDelete {
			newLine++
		}
		oldEOF := sourceNoNL && i == lastOld
		newEOF := targetNoNL && i == lastNew
		switch {
		case c.Type == snapdiff.ChangeDelete:
			c.NoNewline = oldEOF
		case c.Type == snapdiff.ChangeInsert:
			c.NoNewline = newEOF
		case oldEOF == newEOF:
			c.NoNewline = oldEOF
		default:
			out = append(out,
				snapdiff.Change{Type: snapdiff.ChangeDelete, Content: c.Content, LineNumber: c.LineNumber, NoNewline: oldEOF},
				snapdiff.Change{Type: snapdiff.ChangeInsert, Content: c.Content, LineNumber: newLine, NoNewline: newEOF},
			)
			continue
		}
		out = append(out, c)
	}
	return out
}

// SplitLines splits text on newlines. A single trailing newline does not
// produce an empty last line, and empty text has no lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
