package snapdiff

import "io"

// Formatter writes comparison results for presentation.
type Formatter interface {
	// Format writes diffs to w in order.
	Format(w io.Writer, diffs []FileDiff) error
}
