// Package chroma names file languages using the chroma lexer registry.
package chroma

import (
	"path"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/fwojciec/snapdiff"
)

// Compile-time interface verification.
var _ snapdiff.LanguageDetector = (*LanguageDetector)(nil)

// overrides covers extensions chroma does not register.
var overrides = map[string]string{
	".ipynb": "Jupyter Notebook",
}

// LanguageDetector detects languages from file names.
type LanguageDetector struct{}

// NewLanguageDetector creates a new chroma-based language detector.
func NewLanguageDetector() *LanguageDetector {
	return &LanguageDetector{}
}

// DetectFromPath returns the chroma lexer name for path, or "" if no lexer
// matches.
func (d *LanguageDetector) DetectFromPath(p string) string {
	if name, ok := overrides[path.Ext(p)]; ok {
		return name
	}
	lexer := lexers.Match(path.Base(p))
	if lexer == nil {
		return ""
	}
	return lexer.Config().Name
}
