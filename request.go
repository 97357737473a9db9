package snapdiff

import "errors"

// Validation errors returned by ComparisonRequest.Validate.
var (
	ErrEmptyRef = errors.New("comparison ref is empty")
	ErrSameRef  = errors.New("source and target refer to the same state")
)

// ErrNotFound is returned by collaborators for missing snapshots or files.
var ErrNotFound = errors.New("not found")

// ComparisonRequest names the two states to compare.
type ComparisonRequest struct {
	ProjectID string // Project whose workspace backs Current
	Source    Ref
	Target    Ref
}

// Validate checks the request is not degenerate. Comparing a state with
// itself is legal for the engine, which returns no diffs, so callers that
// want to reject it must call Validate first.
func (r ComparisonRequest) Validate() error {
	if r.Source == "" || r.Target == "" {
		return ErrEmptyRef
	}
	if r.Source == r.Target {
		return ErrSameRef
	}
	return nil
}
