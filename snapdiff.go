// Package snapdiff provides domain types for comparing snapshots of a
// project's file tree against each other or against the live workspace.
package snapdiff

import "fmt"

// DevNull is the path used on the missing side of an added or deleted file.
const DevNull = "/dev/null"

// Current is the Ref denoting the live, unsaved workspace.
const Current Ref = "current"

// Ref identifies one side of a comparison: a snapshot ID or Current.
type Ref string

// IsCurrent reports whether the ref denotes the live workspace.
func (r Ref) IsCurrent() bool {
	return r == Current
}

// ContentKind classifies file content at the collaborator boundary.
type ContentKind int

// Content kinds.
const (
	KindText ContentKind = iota
	KindBinary
	KindOversized
	KindNotebook
)

// KindOf maps the boolean flags reported by external classifiers onto a
// ContentKind. Binary wins over Oversized, which wins over Notebook.
func KindOf(isBinary, isLargeFile, isNotebook bool) ContentKind {
	switch {
	case isBinary:
		return KindBinary
	case isLargeFile:
		return KindOversized
	case isNotebook:
		return KindNotebook
	default:
		return KindText
	}
}

// String returns the lowercase name of the kind.
func (k ContentKind) String() string {
	switch k {
	case KindBinary:
		return "binary"
	case KindOversized:
		return "oversized"
	case KindNotebook:
		return "notebook"
	default:
		return "text"
	}
}

// FileRecord is the content of one file as returned by a collaborator.
type FileRecord struct {
	Path    string
	Content string      // Empty for oversized files that were not loaded
	Kind    ContentKind // Classification done by the collaborator
	Size    int64       // Size in bytes of the raw content
	Digest  uint64      // Optional xxhash64 of the raw content, 0 if unset
}

// IsBinary reports whether the record holds binary content.
func (r *FileRecord) IsBinary() bool { return r.Kind == KindBinary }

// IsLargeFile reports whether the record was too large to diff.
func (r *FileRecord) IsLargeFile() bool { return r.Kind == KindOversized }

// IsNotebook reports whether the record holds a notebook document.
func (r *FileRecord) IsNotebook() bool { return r.Kind == KindNotebook }

// Special reports whether the record bypasses line diffing entirely.
func (r *FileRecord) Special() bool {
	return r.Kind == KindBinary || r.Kind == KindOversized
}

// SameContent reports whether two records hold byte-identical content.
// Digests are compared when both sides carry one.
func SameContent(a, b *FileRecord) bool {
	if a.Digest != 0 && b.Digest != 0 {
		return a.Digest == b.Digest && a.Size == b.Size
	}
	return a.Content == b.Content
}

// ChangeType represents the type of a single output line.
type ChangeType int

// Change types.
const (
	ChangeNormal ChangeType = iota
	ChangeInsert
	ChangeDelete
)

// String returns the lowercase name of the change type.
func (t ChangeType) String() string {
	switch t {
	case ChangeInsert:
		return "insert"
	case ChangeDelete:
		return "delete"
	default:
		return "normal"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t ChangeType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ChangeType) UnmarshalText(b []byte) error {
	switch string(b) {
	case "normal":
		*t = ChangeNormal
	case "insert":
		*t = ChangeInsert
	case "delete":
		*t = ChangeDelete
	default:
		return fmt.Errorf("unknown change type %q", b)
	}
	return nil
}

// Change is a single line within a hunk.
type Change struct {
	Type       ChangeType `json:"type"`
	Content    string     `json:"content"`
	LineNumber int        `json:"lineNumber"`
	NoNewline  bool       `json:"noNewline,omitempty"` // "\ No newline at end of file" marker
}

// Hunk is a block of line changes. A modified line appears as a delete
// immediately followed by an insert at the same line number, so
// len(Changes) may exceed OldLines+NewLines.
type Hunk struct {
	Header   string   `json:"header"`
	OldStart int      `json:"oldStart"`
	OldLines int      `json:"oldLines"`
	NewStart int      `json:"newStart"`
	NewLines int      `json:"newLines"`
	Changes  []Change `json:"changes"`
}

// HasEdits reports whether the hunk contains any insert or delete.
func (h Hunk) HasEdits() bool {
	for _, c := range h.Changes {
		if c.Type != ChangeNormal {
			return true
		}
	}
	return false
}

// HunkHeader formats a unified hunk header.
func HunkHeader(oldStart, oldLines, newStart, newLines int) string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", oldStart, oldLines, newStart, newLines)
}

// NoteHunk builds a synthetic single-line hunk carrying an explanatory
// message instead of file content.
func NoteHunk(t ChangeType, message string) Hunk {
	var oldLines, newLines int
	switch t {
	case ChangeInsert:
		newLines = 1
	case ChangeDelete:
		oldLines = 1
	default:
		oldLines, newLines = 1, 1
	}
	return Hunk{
		Header:   HunkHeader(1, oldLines, 1, newLines),
		OldStart: 1,
		OldLines: oldLines,
		NewStart: 1,
		NewLines: newLines,
		Changes:  []Change{{Type: t, Content: message, LineNumber: 1}},
	}
}

// DiffKind represents the outcome recorded for one file.
type DiffKind int

// Diff kinds.
const (
	DiffModify DiffKind = iota
	DiffAdd
	DiffDelete
	DiffSpecial
	DiffError
)

// String returns the lowercase name of the kind.
func (k DiffKind) String() string {
	switch k {
	case DiffAdd:
		return "add"
	case DiffDelete:
		return "delete"
	case DiffSpecial:
		return "special"
	case DiffError:
		return "error"
	default:
		return "modify"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k DiffKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *DiffKind) UnmarshalText(b []byte) error {
	for _, c := range []DiffKind{DiffModify, DiffAdd, DiffDelete, DiffSpecial, DiffError} {
		if c.String() == string(b) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("unknown diff kind %q", b)
}

// FileDiff is the comparison result for a single path.
type FileDiff struct {
	OldPath  string   `json:"oldPath"` // DevNull for added files
	NewPath  string   `json:"newPath"` // DevNull for deleted files
	Kind     DiffKind `json:"kind"`
	Language string   `json:"language,omitempty"` // Display language, empty if unknown
	Hunks    []Hunk   `json:"hunks"`
}

// Path returns the path of the file on whichever side exists.
func (d FileDiff) Path() string {
	if d.NewPath == DevNull || d.NewPath == "" {
		return d.OldPath
	}
	return d.NewPath
}

// Stats returns the number of inserted and deleted lines.
func (d FileDiff) Stats() (added, deleted int) {
	for _, h := range d.Hunks {
		for _, c := range h.Changes {
			switch c.Type {
			case ChangeInsert:
				added++
			case ChangeDelete:
				deleted++
			}
		}
	}
	return added, deleted
}
