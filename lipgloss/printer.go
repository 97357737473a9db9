package lipgloss

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/snapdiff"
)

// Compile-time interface verification.
var _ snapdiff.Formatter = (*Printer)(nil)

const noNewlineMarker = `\ No newline at end of file`

// Printer writes diffs as colored unified text.
type Printer struct {
	theme    *Theme
	renderer *lipgloss.Renderer
	summary  bool
}

// Option configures a Printer.
type Option func(*Printer)

// WithTheme sets the color theme.
func WithTheme(t *Theme) Option {
	return func(p *Printer) { p.theme = t }
}

// WithRenderer sets the renderer. Without one, a renderer is created for
// each writer so the color profile follows the output terminal.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(p *Printer) { p.renderer = r }
}

// WithSummary appends a totals line after the last file.
func WithSummary(enabled bool) Option {
	return func(p *Printer) { p.summary = enabled }
}

// NewPrinter creates a printer with the default theme.
func NewPrinter(opts ...Option) *Printer {
	p := &Printer{theme: DefaultTheme()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Format writes every diff to w.
func (p *Printer) Format(w io.Writer, diffs []snapdiff.FileDiff) error {
	r := p.renderer
	if r == nil {
		r = lipgloss.NewRenderer(w)
	}
	s := p.theme.styles(r)

	var b strings.Builder
	var added, deleted int
	for _, d := range diffs {
		writeFile(&b, s, d)
		a, del := d.Stats()
		added += a
		deleted += del
	}
	if p.summary && len(diffs) > 0 {
		b.WriteString(s.note.Render(summary(len(diffs), added, deleted)))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeFile(b *strings.Builder, s styles, d snapdiff.FileDiff) {
	oldName, newName := d.OldPath, d.NewPath
	if oldName != snapdiff.DevNull {
		oldName = "a/" + oldName
	}
	if newName != snapdiff.DevNull {
		newName = "b/" + newName
	}
	b.WriteString(s.file.Render("--- " + oldName))
	b.WriteByte('\n')
	b.WriteString(s.file.Render("+++ " + newName))
	b.WriteByte('\n')

	for _, h := range d.Hunks {
		if len(h.Changes) == 0 {
			continue
		}
		b.WriteString(s.hunk.Render(h.Header))
		b.WriteByte('\n')
		for _, c := range h.Changes {
			b.WriteString(renderChange(s, d.Kind, c))
			b.WriteByte('\n')
			if c.NoNewline {
				b.WriteString(s.note.Render(noNewlineMarker))
				b.WriteByte('\n')
			}
		}
	}
}

func renderChange(s styles, kind snapdiff.DiffKind, c snapdiff.Change) string {
	content := ExpandTabs(c.Content, 1)
	switch {
	case kind == snapdiff.DiffSpecial || kind == snapdiff.DiffError:
		return s.note.Render(" " + content)
	case c.Type == snapdiff.ChangeInsert:
		return s.added.Render("+" + content)
	case c.Type == snapdiff.ChangeDelete:
		return s.deleted.Render("-" + content)
	default:
		return s.context.Render(" " + content)
	}
}

func summary(files, added, deleted int) string {
	return fmt.Sprintf("%d %s changed, %d %s(+), %d %s(-)",
		files, plural(files, "file", "files"),
		added, plural(added, "insertion", "insertions"),
		deleted, plural(deleted, "deletion", "deletions"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
