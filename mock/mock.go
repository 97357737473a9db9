// Package mock provides test doubles for snapdiff interfaces.
package mock

import (
	"context"

	"github.com/fwojciec/snapdiff"
)

// Compile-time interface verification.
var (
	_ snapdiff.SnapshotStore    = (*SnapshotStore)(nil)
	_ snapdiff.Workspace        = (*Workspace)(nil)
	_ snapdiff.PathFilter       = (*PathFilter)(nil)
	_ snapdiff.LanguageDetector = (*LanguageDetector)(nil)
)

// SnapshotStore is a mock implementation of snapdiff.SnapshotStore.
type SnapshotStore struct {
	ListFilesFn func(ctx context.Context, snapshotID string) ([]string, error)
	ReadFileFn  func(ctx context.Context, snapshotID, path string) (*snapdiff.FileRecord, error)
}

func (m *SnapshotStore) ListFiles(ctx context.Context, snapshotID string) ([]string, error) {
	return m.ListFilesFn(ctx, snapshotID)
}

func (m *SnapshotStore) ReadFile(ctx context.Context, snapshotID, path string) (*snapdiff.FileRecord, error) {
	return m.ReadFileFn(ctx, snapshotID, path)
}

// Workspace is a mock implementation of snapdiff.Workspace.
type Workspace struct {
	ListFilesFn func(ctx context.Context, projectID string) ([]string, error)
	ReadFileFn  func(ctx context.Context, projectID, path string) (*snapdiff.FileRecord, error)
}

func (m *Workspace) ListFiles(ctx context.Context, projectID string) ([]string, error) {
	return m.ListFilesFn(ctx, projectID)
}

func (m *Workspace) ReadFile(ctx context.Context, projectID, path string) (*snapdiff.FileRecord, error) {
	return m.ReadFileFn(ctx, projectID, path)
}

// PathFilter is a mock implementation of snapdiff.PathFilter.
type PathFilter struct {
	IsIgnoredFn func(path string) bool
}

func (m *PathFilter) IsIgnored(path string) bool {
	return m.IsIgnoredFn(path)
}

// LanguageDetector is a mock implementation of snapdiff.LanguageDetector.
type LanguageDetector struct {
	DetectFromPathFn func(path string) string
}

func (m *LanguageDetector) DetectFromPath(path string) string {
	return m.DetectFromPathFn(path)
}
