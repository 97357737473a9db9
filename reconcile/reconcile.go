// Package reconcile computes which paths were added, removed or kept
// between two file listings.
package reconcile

import (
	"sort"

	"github.com/fwojciec/snapdiff"
)

// Presence says on which sides of a comparison a path exists.
type Presence int

// Presence values.
const (
	Absent Presence = iota
	SourceOnly
	TargetOnly
	Both
)

// Result is the set algebra of two filtered listings.
type Result struct {
	Union      []string // Sorted, each path exactly once
	SourceOnly map[string]struct{}
	TargetOnly map[string]struct{}
	Both       map[string]struct{}
}

// Presence reports where path exists in the filtered listings.
func (r *Result) Presence(path string) Presence {
	if _, ok := r.Both[path]; ok {
		return Both
	}
	if _, ok := r.SourceOnly[path]; ok {
		return SourceOnly
	}
	if _, ok := r.TargetOnly[path]; ok {
		return TargetOnly
	}
	return Absent
}

// Reconcile cleans both listings, drops paths the filter ignores from each
// side independently, and computes their union and memberships. A nil
// filter keeps every path.
func Reconcile(filter snapdiff.PathFilter, source, target []string) *Result {
	src := cleanSet(filter, source)
	tgt := cleanSet(filter, target)

	r := &Result{
		Union:      make([]string, 0, len(src)+len(tgt)),
		SourceOnly: make(map[string]struct{}),
		TargetOnly: make(map[string]struct{}),
		Both:       make(map[string]struct{}),
	}
	for p := range src {
		if _, ok := tgt[p]; ok {
			r.Both[p] = struct{}{}
		} else {
			r.SourceOnly[p] = struct{}{}
		}
		r.Union = append(r.Union, p)
	}
	for p := range tgt {
		if _, ok := src[p]; !ok {
			r.TargetOnly[p] = struct{}{}
			r.Union = append(r.Union, p)
		}
	}

	// Sort for deterministic output
	sort.Strings(r.Union)
	return r
}

func cleanSet(filter snapdiff.PathFilter, paths []string) map[string]struct{} {
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		p = snapdiff.CleanPath(p)
		if p == "" {
			continue
		}
		if filter != nil && filter.IsIgnored(p) {
			continue
		}
		set[p] = struct{}{}
	}
	return set
}
