package snapdiff

// LineDiffer computes line-level changes between two text bodies.
type LineDiffer interface {
	// Diff returns a single hunk spanning both texts. A hunk without
	// inserts or deletes means the texts are identical.
	Diff(source, target string) Hunk
}

// LanguageDetector names the display language of a file.
type LanguageDetector interface {
	// DetectFromPath returns the language for path, or "" if unknown.
	DetectFromPath(path string) string
}
