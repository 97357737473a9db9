package snapdiff

import (
	"path"
	"strings"
)

// CleanPath canonicalizes separators and strips trailing separators so
// listings from different sources compare equal. It returns "" for paths
// that name no file.
func CleanPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	if strings.Trim(p, "/") == "" {
		return ""
	}
	p = path.Clean(p)
	p = strings.TrimPrefix(p, "./")
	if p == "." {
		return ""
	}
	return p
}
