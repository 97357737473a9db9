package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/snapdiff"
)

// Compile-time interface verification.
var _ snapdiff.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore reads snapshots saved as directory trees: snapshot <id>
// is the directory Root/<id>.
type SnapshotStore struct {
	Root        string
	MaxFileSize int64 // 0 uses DefaultMaxFileSize
}

// NewSnapshotStore returns a SnapshotStore rooted at root.
func NewSnapshotStore(root string) *SnapshotStore {
	return &SnapshotStore{Root: root}
}

// Snapshots returns the IDs of all stored snapshots, sorted.
func (s *SnapshotStore) Snapshots() ([]string, error) {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		return nil, notFound(err)
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			ids = append(ids, e.Name())
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// ListFiles returns every file stored in the snapshot.
func (s *SnapshotStore) ListFiles(ctx context.Context, snapshotID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir, err := s.dir(snapshotID)
	if err != nil {
		return nil, err
	}
	return listFiles(dir, nil)
}

// ReadFile reads and classifies one file of the snapshot.
func (s *SnapshotStore) ReadFile(ctx context.Context, snapshotID, path string) (*snapdiff.FileRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir, err := s.dir(snapshotID)
	if err != nil {
		return nil, err
	}
	name, err := resolve(dir, path)
	if err != nil {
		return nil, err
	}
	return Inspect(name, path, s.MaxFileSize)
}

func (s *SnapshotStore) dir(snapshotID string) (string, error) {
	if snapshotID == "" || strings.ContainsAny(snapshotID, `/\`) || snapshotID == "." || snapshotID == ".." {
		return "", fmt.Errorf("invalid snapshot id %q", snapshotID)
	}
	return filepath.Join(s.Root, snapshotID), nil
}
