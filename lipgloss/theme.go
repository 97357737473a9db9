// Package lipgloss renders comparison results as colored terminal text.
package lipgloss

import "github.com/charmbracelet/lipgloss"

// Palette holds the colors used by the printer.
type Palette struct {
	Added   lipgloss.Color
	Deleted lipgloss.Color
	Context lipgloss.Color
	Hunk    lipgloss.Color
	File    lipgloss.Color
	Note    lipgloss.Color
}

// Theme pairs a palette with the styles derived from it.
type Theme struct {
	palette Palette
}

// NewTheme creates a theme from a palette.
func NewTheme(p Palette) *Theme {
	return &Theme{palette: p}
}

// DefaultTheme returns the standard dark-terminal theme.
func DefaultTheme() *Theme {
	return NewTheme(Palette{
		Added:   lipgloss.Color("#a6e3a1"),
		Deleted: lipgloss.Color("#f38ba8"),
		Context: lipgloss.Color("#cdd6f4"),
		Hunk:    lipgloss.Color("#89b4fa"),
		File:    lipgloss.Color("#f9e2af"),
		Note:    lipgloss.Color("#9399b2"),
	})
}

// TestTheme returns a theme with fixed primary colors for tests.
func TestTheme() *Theme {
	return NewTheme(Palette{
		Added:   lipgloss.Color("#00ff00"),
		Deleted: lipgloss.Color("#ff0000"),
		Context: lipgloss.Color("#ffffff"),
		Hunk:    lipgloss.Color("#0000ff"),
		File:    lipgloss.Color("#ffff00"),
		Note:    lipgloss.Color("#808080"),
	})
}

// Palette returns the theme's colors.
func (t *Theme) Palette() Palette {
	return t.palette
}

type styles struct {
	added   lipgloss.Style
	deleted lipgloss.Style
	context lipgloss.Style
	hunk    lipgloss.Style
	file    lipgloss.Style
	note    lipgloss.Style
}

func (t *Theme) styles(r *lipgloss.Renderer) styles {
	p := t.palette
	return styles{
		added:   r.NewStyle().Foreground(p.Added),
		deleted: r.NewStyle().Foreground(p.Deleted),
		context: r.NewStyle().Foreground(p.Context),
		hunk:    r.NewStyle().Foreground(p.Hunk),
		file:    r.NewStyle().Foreground(p.File).Bold(true),
		note:    r.NewStyle().Foreground(p.Note).Italic(true),
	}
}
