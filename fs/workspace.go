package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fwojciec/snapdiff"
)

// Compile-time interface verification.
var _ snapdiff.Workspace = (*Workspace)(nil)

// Workspace reads live project trees below Root. Project "" is Root
// itself. Any other project is the directory Root/<projectID>.
type Workspace struct {
	Root        string
	MaxFileSize int64               // 0 uses DefaultMaxFileSize
	Filter      snapdiff.PathFilter // Prunes ignored directories while walking
}

// NewWorkspace returns a Workspace rooted at root.
func NewWorkspace(root string) *Workspace {
	return &Workspace{Root: root}
}

// Dir returns the directory holding the project's files. A project ID
// names a single directory directly below Root.
func (w *Workspace) Dir(projectID string) (string, error) {
	if projectID == "" {
		return w.Root, nil
	}
	if strings.ContainsAny(projectID, `/\`) || projectID == "." || projectID == ".." {
		return "", fmt.Errorf("invalid project id %q", projectID)
	}
	return filepath.Join(w.Root, projectID), nil
}

// ListFiles returns every regular file in the project.
func (w *Workspace) ListFiles(ctx context.Context, projectID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir, err := w.Dir(projectID)
	if err != nil {
		return nil, err
	}
	return listFiles(dir, w.Filter)
}

// ReadFile reads and classifies one file of the project.
func (w *Workspace) ReadFile(ctx context.Context, projectID, path string) (*snapdiff.FileRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir, err := w.Dir(projectID)
	if err != nil {
		return nil, err
	}
	name, err := resolve(dir, path)
	if err != nil {
		return nil, err
	}
	return Inspect(name, path, w.MaxFileSize)
}
