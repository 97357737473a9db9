// Package normalize rewrites structured file content into a stable textual
// form so that cosmetic differences do not show up as changes.
package normalize

import (
	"bytes"
	"encoding/json"
	"path"
	"strings"
)

// Indent is the indentation used for every normalized document.
const Indent = "  "

// NotebookExtension is the file extension of notebook documents.
const NotebookExtension = ".ipynb"

var structuredExtensions = map[string]bool{
	".json":           true,
	".geojson":        true,
	".jsonld":         true,
	NotebookExtension: true,
}

// IsStructured reports whether path holds JSON that should be normalized
// before diffing.
func IsStructured(p string) bool {
	return structuredExtensions[strings.ToLower(path.Ext(p))]
}

// IsNotebook reports whether path names a notebook document.
func IsNotebook(p string) bool {
	return strings.EqualFold(path.Ext(p), NotebookExtension)
}

// JSON pretty-prints content with a fixed indentation, preserving key
// order. Notebook paths are reduced with Notebook first. Content that does
// not parse is returned unchanged.
func JSON(content, p string) string {
	if content == "" {
		return ""
	}
	if IsNotebook(p) {
		if reduced, err := Notebook(content); err == nil {
			return reduced
		}
	}
	out, err := Pretty(content)
	if err != nil {
		return content
	}
	return out
}

// Pretty re-indents a JSON document. It fails if content is not valid JSON.
func Pretty(content string) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(strings.TrimSpace(content)), "", Indent); err != nil {
		return "", err
	}
	buf.WriteByte('\n')
	return buf.String(), nil
}
