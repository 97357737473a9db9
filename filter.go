package snapdiff

// PathFilter decides which paths take part in a comparison.
type PathFilter interface {
	// IsIgnored reports whether path is excluded regardless of content.
	IsIgnored(path string) bool
}
