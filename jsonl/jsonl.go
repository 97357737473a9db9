// Package jsonl reads and writes comparison results as JSON Lines, one
// FileDiff object per line.
package jsonl

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/snapdiff"
)

// Compile-time interface verification.
var _ snapdiff.Formatter = (*Writer)(nil)

// maxLineSize bounds a single record; notebooks with large outputs exceed
// the scanner's 64KB default.
const maxLineSize = 16 * 1024 * 1024

// Record is the wire form of one FileDiff.
type Record struct {
	snapdiff.FileDiff
	Added   int `json:"added"`
	Deleted int `json:"deleted"`
}

// Writer writes FileDiffs as JSON Lines.
type Writer struct{}

// NewWriter creates a new JSON Lines writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Format writes one record per diff.
func (wr *Writer) Format(w io.Writer, diffs []snapdiff.FileDiff) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, d := range diffs {
		added, deleted := d.Stats()
		if d.Hunks == nil {
			d.Hunks = []snapdiff.Hunk{}
		}
		if err := enc.Encode(Record{FileDiff: d, Added: added, Deleted: deleted}); err != nil {
			return fmt.Errorf("encode %s: %w", d.Path(), err)
		}
	}
	return nil
}

// Loader reads records back from JSON Lines files.
type Loader struct{}

// NewLoader creates a new JSON Lines loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads all records from the file at path.
func (l *Loader) Load(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return l.Read(f)
}

// Read reads all records from r. Blank lines are skipped.
func (l *Loader) Read(r io.Reader) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
