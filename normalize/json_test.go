package normalize_test

import (
	"testing"

	"github.com/fwojciec/snapdiff/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("returns empty for empty content", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "", normalize.JSON("", "a.json"))
	})

	t.Run("re-indents preserving key order", func(t *testing.T) {
		t.Parallel()

		got := normalize.JSON(`{"b":1,"a":[1,2]}`, "config.json")

		assert.Equal(t, "{\n  \"b\": 1,\n  \"a\": [\n    1,\n    2\n  ]\n}\n", got)
	})

	t.Run("formatting differences normalize to the same text", func(t *testing.T) {
		t.Parallel()

		compact := normalize.JSON(`{"name":"x","tags":["a"]}`, "a.json")
		spaced := normalize.JSON("{\n    \"name\" : \"x\",\n\t\"tags\": [ \"a\" ]\n}\n", "a.json")

		assert.Equal(t, compact, spaced)
	})

	t.Run("returns invalid content unchanged", func(t *testing.T) {
		t.Parallel()

		content := "{not json"
		assert.Equal(t, content, normalize.JSON(content, "broken.json"))
	})

	t.Run("reduces notebooks", func(t *testing.T) {
		t.Parallel()

		got := normalize.JSON(`{"cells":[{"cell_type":"code","source":["a","b"],"id":"xyz"}]}`, "nb.IPYNB")

		assert.Contains(t, got, `"source": "ab"`)
		assert.NotContains(t, got, "xyz")
	})

	t.Run("pretty-prints notebooks that cannot be reduced", func(t *testing.T) {
		t.Parallel()

		got := normalize.JSON(`{"cells":"oops","id":"xyz"}`, "nb.ipynb")

		assert.Equal(t, "{\n  \"cells\": \"oops\",\n  \"id\": \"xyz\"\n}\n", got)
	})
}

func TestPretty(t *testing.T) {
	t.Parallel()

	out, err := normalize.Pretty("  [1,{\"a\":null}]  ")
	require.NoError(t, err)
	assert.Equal(t, "[\n  1,\n  {\n    \"a\": null\n  }\n]\n", out)

	_, err = normalize.Pretty("nope")
	assert.Error(t, err)
}

func TestIsStructured(t *testing.T) {
	t.Parallel()

	cases := []struct {
		path string
		want bool
	}{
		{"a.json", true},
		{"dir/A.JSON", true},
		{"nb.ipynb", true},
		{"map.geojson", true},
		{"main.py", false},
		{"json", false},
		{"notes.jsonl", false},
	}
	for _, tt := range cases {
		assert.Equal(t, tt.want, normalize.IsStructured(tt.path), tt.path)
	}
}
