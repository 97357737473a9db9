package snapdiff

import "context"

// SnapshotStore reads the file tree of saved snapshots.
type SnapshotStore interface {
	// ListFiles returns every file path stored in the snapshot.
	ListFiles(ctx context.Context, snapshotID string) ([]string, error)

	// ReadFile returns the content of one file in the snapshot.
	ReadFile(ctx context.Context, snapshotID, path string) (*FileRecord, error)
}

// Workspace reads the live file tree of a project.
type Workspace interface {
	// ListFiles returns every file path currently in the project.
	ListFiles(ctx context.Context, projectID string) ([]string, error)

	// ReadFile returns the current content of one file in the project.
	ReadFile(ctx context.Context, projectID, path string) (*FileRecord, error)
}
