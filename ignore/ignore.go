// Package ignore decides which paths are left out of a comparison.
package ignore

import (
	"path"
	"regexp"
	"strings"

	"github.com/fwojciec/snapdiff"
)

// Compile-time interface verification.
var _ snapdiff.PathFilter = (*Filter)(nil)

// LogExtension is the reserved extension of log files.
const LogExtension = ".log"

// reservedSegments are directory names that never take part in a
// comparison, wherever they appear in a path.
var reservedSegments = map[string]bool{
	// Checkpoint and bytecode caches.
	".ipynb_checkpoints": true,
	"__pycache__":        true,
	// Notebook runtime configuration.
	".jupyter": true,
	".ipython": true,
	// Snapshot storage; a snapshot must never contain itself.
	"snapshots":  true,
	".snapshots": true,
}

var trashSegment = regexp.MustCompile(`^\.(Trash|trash)(-\d+)?$`)

// Filter reports ignored paths using the reserved rules plus optional
// user patterns.
type Filter struct {
	patterns []string
}

// New returns a Filter that applies the reserved rules and patterns.
// Patterns follow gitignore-like globbing: "*" and "?" within a segment,
// "**" across segments. A pattern without "/" matches any segment, and a
// trailing "/" restricts it to directories.
func New(patterns ...string) *Filter {
	f := &Filter{}
	for _, p := range patterns {
		p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
		if p == "" || strings.HasPrefix(p, "#") {
			continue
		}
		f.patterns = append(f.patterns, p)
	}
	return f
}

// IsIgnored reports whether path must be excluded from comparison.
func (f *Filter) IsIgnored(p string) bool {
	clean := snapdiff.CleanPath(p)
	if clean == "" {
		return true
	}
	if strings.HasSuffix(clean, LogExtension) {
		return true
	}

	segments := strings.Split(strings.TrimPrefix(clean, "/"), "/")
	for _, seg := range segments {
		if reservedSegments[seg] || trashSegment.MatchString(seg) {
			return true
		}
	}

	for _, pat := range f.patterns {
		if matchPattern(pat, segments) {
			return true
		}
	}
	return false
}

// matchPattern matches a single user pattern against path segments.
func matchPattern(pat string, segments []string) bool {
	dirOnly := strings.HasSuffix(pat, "/")
	pat = strings.TrimSuffix(pat, "/")

	if !strings.Contains(pat, "/") {
		// Bare name: any segment, or any directory segment when dirOnly.
		last := len(segments)
		if dirOnly {
			last--
		}
		for _, seg := range segments[:max(last, 0)] {
			if ok, _ := path.Match(pat, seg); ok {
				return true
			}
		}
		return false
	}

	pats := strings.Split(strings.TrimPrefix(pat, "/"), "/")
	if dirOnly {
		// A directory pattern ignores everything below the directory.
		pats = append(pats, "**")
	}
	return matchSegments(pats, segments)
}

// matchSegments handles *, ? and ** like git.
func matchSegments(pats, parts []string) bool {
	for len(pats) > 0 {
		p := pats[0]
		pats = pats[1:]

		if p == "**" {
			if len(pats) == 0 {
				return true
			}
			for i := 0; i <= len(parts); i++ {
				if matchSegments(pats, parts[i:]) {
					return true
				}
			}
			return false
		}

		if len(parts) == 0 {
			return false
		}
		if ok, _ := path.Match(p, parts[0]); !ok {
			return false
		}
		parts = parts[1:]
	}
	return len(parts) == 0
}
