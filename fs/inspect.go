package fs

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/snapdiff"
	"github.com/fwojciec/snapdiff/normalize"
)

// DefaultMaxFileSize is the size above which files are not loaded.
const DefaultMaxFileSize = 1 << 20

// sniffLen is how many leading bytes are checked for NUL, as git does.
const sniffLen = 8000

const bufferSize = 32 * 1024

// Inspect reads the file at name and classifies it. rel is the path
// reported in the record. Files larger than maxSize are not loaded; their
// xxhash64 digest is streamed instead. A maxSize of 0 uses
// DefaultMaxFileSize.
func Inspect(name, rel string, maxSize int64) (*snapdiff.FileRecord, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	info, err := os.Stat(name)
	if err != nil {
		return nil, notFound(err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", rel)
	}

	rec := &snapdiff.FileRecord{Path: rel, Size: info.Size()}
	if info.Size() > maxSize {
		digest, err := hashFile(name)
		if err != nil {
			return nil, err
		}
		rec.Kind = snapdiff.KindOversized
		rec.Digest = digest
		return rec, nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return nil, notFound(err)
	}
	rec.Content = string(data)
	rec.Size = int64(len(data))
	rec.Kind = Classify(rel, data)
	return rec, nil
}

// Classify returns the content kind of data stored at path.
func Classify(path string, data []byte) snapdiff.ContentKind {
	sniff := data
	if len(sniff) > sniffLen {
		sniff = sniff[:sniffLen]
	}
	if bytes.IndexByte(sniff, 0) >= 0 || !utf8.Valid(data) {
		return snapdiff.KindBinary
	}
	if normalize.IsNotebook(path) {
		return snapdiff.KindNotebook
	}
	return snapdiff.KindText
}

// hashFile computes the xxhash64 of a file using streaming reads.
func hashFile(name string) (uint64, error) {
	f, err := os.Open(name)
	if err != nil {
		return 0, notFound(err)
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.CopyBuffer(h, f, make([]byte, bufferSize)); err != nil {
		return 0, fmt.Errorf("failed to read file: %w", err)
	}
	return h.Sum64(), nil
}
