package jsonl_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/snapdiff"
	"github.com/fwojciec/snapdiff/jsonl"
	"github.com/fwojciec/snapdiff/linediff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Format(t *testing.T) {
	t.Parallel()

	t.Run("writes one object per line", func(t *testing.T) {
		t.Parallel()

		diffs := []snapdiff.FileDiff{
			{
				OldPath:  "m.py",
				NewPath:  "m.py",
				Kind:     snapdiff.DiffModify,
				Language: "Python",
				Hunks:    []snapdiff.Hunk{linediff.Indexed{}.Diff("1\n2\n", "1\nTWO\n")},
			},
			{OldPath: snapdiff.DevNull, NewPath: "empty.txt", Kind: snapdiff.DiffAdd},
		}

		var buf bytes.Buffer
		require.NoError(t, jsonl.NewWriter().Format(&buf, diffs))

		lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], `"kind":"modify"`)
		assert.Contains(t, lines[0], `"language":"Python"`)
		assert.Contains(t, lines[0], `"type":"insert"`)
		assert.Contains(t, lines[0], `"added":1`)
		assert.Contains(t, lines[1], `"hunks":[]`)
		assert.NotContains(t, lines[1], `"language"`)
	})

	t.Run("does not escape markup", func(t *testing.T) {
		t.Parallel()

		diffs := []snapdiff.FileDiff{{
			OldPath: "a.html",
			NewPath: "a.html",
			Hunks:   []snapdiff.Hunk{linediff.Indexed{}.Diff("<p>\n", "<b>\n")},
		}}

		var buf bytes.Buffer
		require.NoError(t, jsonl.NewWriter().Format(&buf, diffs))

		assert.Contains(t, buf.String(), `"content":"<b>"`)
	})
}

func TestLoader_Read(t *testing.T) {
	t.Parallel()

	t.Run("reads back written records", func(t *testing.T) {
		t.Parallel()

		diffs := []snapdiff.FileDiff{
			{
				OldPath: "m.py",
				NewPath: "m.py",
				Kind:    snapdiff.DiffModify,
				Hunks:   []snapdiff.Hunk{linediff.Indexed{}.Diff("1\n2\n", "1\nTWO\n")},
			},
			{
				OldPath: "gone.txt",
				NewPath: snapdiff.DevNull,
				Kind:    snapdiff.DiffDelete,
				Hunks:   []snapdiff.Hunk{linediff.Indexed{}.Diff("x\n", "")},
			},
		}
		var buf bytes.Buffer
		require.NoError(t, jsonl.NewWriter().Format(&buf, diffs))

		records, err := jsonl.NewLoader().Read(&buf)

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, diffs[0], records[0].FileDiff)
		assert.Equal(t, snapdiff.DiffDelete, records[1].Kind)
		assert.Equal(t, 1, records[1].Deleted)
	})

	t.Run("returns error for malformed JSON line", func(t *testing.T) {
		t.Parallel()

		content := `{"oldPath":"a","newPath":"a","kind":"modify","hunks":[]}
not valid json
`
		_, err := jsonl.NewLoader().Read(strings.NewReader(content))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
	})

	t.Run("returns error for unknown kind", func(t *testing.T) {
		t.Parallel()

		_, err := jsonl.NewLoader().Read(strings.NewReader(`{"kind":"renamed"}`))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 1")
	})

	t.Run("skips empty lines", func(t *testing.T) {
		t.Parallel()

		content := `{"oldPath":"a","newPath":"a","kind":"modify","hunks":[]}

{"oldPath":"b","newPath":"b","kind":"special","hunks":[]}`
		records, err := jsonl.NewLoader().Read(strings.NewReader(content))

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, snapdiff.DiffSpecial, records[1].Kind)
	})

	t.Run("handles large lines exceeding default buffer", func(t *testing.T) {
		t.Parallel()

		large := strings.Repeat("x", 100*1024)
		diffs := []snapdiff.FileDiff{{
			OldPath: "big.txt",
			NewPath: "big.txt",
			Hunks:   []snapdiff.Hunk{linediff.Indexed{}.Diff("a\n", large+"\n")},
		}}
		var buf bytes.Buffer
		require.NoError(t, jsonl.NewWriter().Format(&buf, diffs))

		records, err := jsonl.NewLoader().Read(&buf)

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, large, records[0].Hunks[0].Changes[1].Content)
	})
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("loads file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "diff.jsonl")
		require.NoError(t, os.WriteFile(path, []byte(`{"oldPath":"a","newPath":"a","kind":"error","hunks":[]}`+"\n"), 0o644))

		records, err := jsonl.NewLoader().Load(path)

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, snapdiff.DiffError, records[0].Kind)
	})

	t.Run("returns error for non-existent file", func(t *testing.T) {
		t.Parallel()

		_, err := jsonl.NewLoader().Load("/nonexistent/path.jsonl")

		assert.Error(t, err)
	})

	t.Run("handles empty file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "empty.jsonl")
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		records, err := jsonl.NewLoader().Load(path)

		require.NoError(t, err)
		assert.Empty(t, records)
	})
}
