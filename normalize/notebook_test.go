package normalize_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/fwojciec/snapdiff/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleNotebook = `{
 "cells": [
  {
   "cell_type": "markdown",
   "id": "a1",
   "metadata": {},
   "source": ["# Title\n", "intro"]
  },
  {
   "cell_type": "code",
   "execution_count": 3,
   "id": "b2",
   "metadata": {"tags": ["x"]},
   "outputs": [
    {"name": "stdout", "output_type": "stream", "text": ["hello\n", "world\n"]},
    {
     "data": {"text/plain": ["42"], "image/png": "iVBORw0KGgo=", "text/html": "<b>42</b>"},
     "execution_count": 3,
     "metadata": {},
     "output_type": "execute_result"
    }
   ],
   "source": "print('hello')"
  }
 ],
 "metadata": {"kernelspec": {"name": "python3", "display_name": "Python 3"}},
 "nbformat": 4,
 "nbformat_minor": 5
}`

func TestNotebook(t *testing.T) {
	t.Parallel()

	t.Run("reduces cells and keeps metadata verbatim", func(t *testing.T) {
		t.Parallel()

		out, err := normalize.Notebook(sampleNotebook)
		require.NoError(t, err)

		var got struct {
			Metadata map[string]any `json:"metadata"`
			NBFormat int            `json:"nbformat"`
			Cells    []struct {
				CellNumber     int    `json:"cellNumber"`
				CellType       string `json:"cellType"`
				Source         string `json:"source"`
				HasMetadata    bool   `json:"hasMetadata"`
				ExecutionCount *int   `json:"executionCount"`
				Outputs        []struct {
					OutputType string   `json:"outputType"`
					Name       string   `json:"name"`
					Text       string   `json:"text"`
					DataTypes  []string `json:"dataTypes"`
					TextPlain  string   `json:"textPlain"`
				} `json:"outputs"`
			} `json:"cells"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &got))

		assert.Equal(t, "python3", got.Metadata["kernelspec"].(map[string]any)["name"])
		assert.Equal(t, 4, got.NBFormat)
		require.Len(t, got.Cells, 2)

		md := got.Cells[0]
		assert.Equal(t, 1, md.CellNumber)
		assert.Equal(t, "markdown", md.CellType)
		assert.Equal(t, "# Title\nintro", md.Source)
		assert.False(t, md.HasMetadata)
		assert.Nil(t, md.ExecutionCount)
		assert.Empty(t, md.Outputs)

		code := got.Cells[1]
		assert.Equal(t, 2, code.CellNumber)
		assert.True(t, code.HasMetadata)
		require.NotNil(t, code.ExecutionCount)
		assert.Equal(t, 3, *code.ExecutionCount)
		require.Len(t, code.Outputs, 2)
		assert.Equal(t, "stream", code.Outputs[0].OutputType)
		assert.Equal(t, "stdout", code.Outputs[0].Name)
		assert.Equal(t, "hello\nworld\n", code.Outputs[0].Text)
		assert.Equal(t, "execute_result", code.Outputs[1].OutputType)
		assert.Equal(t, []string{"image/png", "text/html", "text/plain"}, code.Outputs[1].DataTypes)
		assert.Equal(t, "42", code.Outputs[1].TextPlain)
	})

	t.Run("drops volatile fields", func(t *testing.T) {
		t.Parallel()

		out, err := normalize.Notebook(sampleNotebook)
		require.NoError(t, err)

		assert.NotContains(t, out, `"id"`)
		assert.NotContains(t, out, "iVBORw0KGgo=")
		assert.NotContains(t, out, "<b>42</b>")
	})

	t.Run("preserves metadata key order", func(t *testing.T) {
		t.Parallel()

		out, err := normalize.Notebook(`{"metadata":{"z":1,"a":2},"cells":[]}`)
		require.NoError(t, err)

		assert.Less(t, strings.Index(out, `"z"`), strings.Index(out, `"a"`))
	})

	t.Run("is stable when only ids differ", func(t *testing.T) {
		t.Parallel()

		a := `{"cells":[{"cell_type":"code","id":"one","execution_count":null,"source":"x = 1","outputs":[]}],"metadata":{}}`
		b := `{"cells":[{"cell_type":"code","id":"two","execution_count":null,"source":["x = 1"],"outputs":[]}],"metadata":{}}`

		outA, err := normalize.Notebook(a)
		require.NoError(t, err)
		outB, err := normalize.Notebook(b)
		require.NoError(t, err)

		assert.Equal(t, outA, outB)
	})

	t.Run("ignores whitespace inside metadata", func(t *testing.T) {
		t.Parallel()

		a := `{"cells":[{"cell_type":"code","source":"x","metadata":{}}],"metadata":{"k":1}}`
		b := `{"cells":[{"cell_type":"code","source":"x","metadata":{ }}],"metadata":{ "k" : 1 }}`
		c := `{"cells":[{"cell_type":"code","source":"x","metadata":{
}}],"metadata":{"k":1}}`

		outA, err := normalize.Notebook(a)
		require.NoError(t, err)
		outB, err := normalize.Notebook(b)
		require.NoError(t, err)
		outC, err := normalize.Notebook(c)
		require.NoError(t, err)

		assert.Equal(t, outA, outB)
		assert.Equal(t, outA, outC)
		assert.Contains(t, outA, `"hasMetadata": false`)
	})

	t.Run("detects non-empty cell metadata", func(t *testing.T) {
		t.Parallel()

		out, err := normalize.Notebook(`{"cells":[{"cell_type":"code","source":"x","metadata":{ "tags" : [] }}]}`)
		require.NoError(t, err)

		assert.Contains(t, out, `"hasMetadata": true`)
	})

	t.Run("reflects execution count changes", func(t *testing.T) {
		t.Parallel()

		a := `{"cells":[{"cell_type":"code","execution_count":1,"source":"x"}]}`
		b := `{"cells":[{"cell_type":"code","execution_count":2,"source":"x"}]}`

		outA, err := normalize.Notebook(a)
		require.NoError(t, err)
		outB, err := normalize.Notebook(b)
		require.NoError(t, err)

		assert.NotEqual(t, outA, outB)
	})

	t.Run("fails without cells", func(t *testing.T) {
		t.Parallel()

		_, err := normalize.Notebook(`{"metadata":{}}`)
		assert.ErrorIs(t, err, normalize.ErrNotNotebook)
	})

	t.Run("fails on malformed source", func(t *testing.T) {
		t.Parallel()

		_, err := normalize.Notebook(`{"cells":[{"cell_type":"code","source":42}]}`)
		assert.Error(t, err)
	})
}

func TestReduceNotebook(t *testing.T) {
	t.Parallel()

	var doc any
	require.NoError(t, json.Unmarshal([]byte(sampleNotebook), &doc))

	out, err := normalize.ReduceNotebook(doc)
	require.NoError(t, err)
	assert.Contains(t, out, `"cellNumber": 2`)
}
