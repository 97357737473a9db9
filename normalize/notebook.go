package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotNotebook is returned when a document lacks a cell list.
var ErrNotNotebook = errors.New("document has no cells")

// text decodes a notebook string field that may be stored either as one
// string or as an array of fragments.
type text string

func (t *text) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = text(s)
		return nil
	}
	var parts []string
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("expected string or string array: %w", err)
	}
	*t = text(strings.Join(parts, ""))
	return nil
}

type rawNotebook struct {
	Metadata      json.RawMessage `json:"metadata"`
	NBFormat      *int            `json:"nbformat"`
	NBFormatMinor *int            `json:"nbformat_minor"`
	Cells         *[]rawCell      `json:"cells"`
}

type rawCell struct {
	CellType       string          `json:"cell_type"`
	Source         text            `json:"source"`
	Metadata       json.RawMessage `json:"metadata"`
	Outputs        *[]rawOutput    `json:"outputs"`
	ExecutionCount *int            `json:"execution_count"`
}

type rawOutput struct {
	OutputType string                     `json:"output_type"`
	Name       string                     `json:"name"`
	Text       text                       `json:"text"`
	Data       map[string]json.RawMessage `json:"data"`
}

type reducedNotebook struct {
	Metadata      json.RawMessage `json:"metadata,omitempty"`
	NBFormat      *int            `json:"nbformat,omitempty"`
	NBFormatMinor *int            `json:"nbformat_minor,omitempty"`
	Cells         []reducedCell   `json:"cells"`
}

type reducedCell struct {
	CellNumber     int             `json:"cellNumber"`
	CellType       string          `json:"cellType"`
	Source         string          `json:"source"`
	Outputs        []reducedOutput `json:"outputs,omitempty"`
	HasMetadata    bool            `json:"hasMetadata"`
	ExecutionCount *int            `json:"executionCount,omitempty"`
}

type reducedOutput struct {
	OutputType string   `json:"outputType"`
	Name       string   `json:"name,omitempty"`
	Text       string   `json:"text,omitempty"`
	DataTypes  []string `json:"dataTypes,omitempty"`
	TextPlain  string   `json:"textPlain,omitempty"`
}

// Notebook parses a notebook document and reduces it to its diff-stable
// form. ReduceNotebook feeds already decoded documents through it.
func Notebook(content string) (string, error) {
	var nb rawNotebook
	if err := json.Unmarshal([]byte(content), &nb); err != nil {
		return "", fmt.Errorf("parse notebook: %w", err)
	}
	return reduce(nb)
}

// ReduceNotebook reduces an already decoded notebook document, as produced
// by json.Unmarshal into an any, to its diff-stable form.
func ReduceNotebook(doc any) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode notebook: %w", err)
	}
	return Notebook(string(data))
}

// reduce keeps metadata verbatim and every cell's type, joined source,
// outputs summary, metadata presence and execution count. Cell IDs,
// attachments and rich payloads are dropped.
func reduce(nb rawNotebook) (string, error) {
	if nb.Cells == nil {
		return "", ErrNotNotebook
	}

	out := reducedNotebook{
		Metadata:      nb.Metadata,
		NBFormat:      nb.NBFormat,
		NBFormatMinor: nb.NBFormatMinor,
		Cells:         make([]reducedCell, 0, len(*nb.Cells)),
	}
	for i, c := range *nb.Cells {
		cell := reducedCell{
			CellNumber:     i + 1,
			CellType:       c.CellType,
			Source:         string(c.Source),
			HasMetadata:    hasContent(c.Metadata),
			ExecutionCount: c.ExecutionCount,
		}
		if c.Outputs != nil {
			for _, o := range *c.Outputs {
				ro, err := reduceOutput(o)
				if err != nil {
					return "", fmt.Errorf("cell %d: %w", i+1, err)
				}
				cell.Outputs = append(cell.Outputs, ro)
			}
		}
		out.Cells = append(out.Cells, cell)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", Indent)
	if err := enc.Encode(out); err != nil {
		return "", fmt.Errorf("encode reduced notebook: %w", err)
	}
	return buf.String(), nil
}

func reduceOutput(o rawOutput) (reducedOutput, error) {
	ro := reducedOutput{
		OutputType: o.OutputType,
		Name:       o.Name,
		Text:       string(o.Text),
	}
	if len(o.Data) == 0 {
		return ro, nil
	}
	ro.DataTypes = make([]string, 0, len(o.Data))
	for mime := range o.Data {
		ro.DataTypes = append(ro.DataTypes, mime)
	}
	sort.Strings(ro.DataTypes)
	if plain, ok := o.Data["text/plain"]; ok {
		var t text
		if err := json.Unmarshal(plain, &t); err != nil {
			return reducedOutput{}, fmt.Errorf("text/plain: %w", err)
		}
		ro.TextPlain = string(t)
	}
	return ro, nil
}

// hasContent reports whether a metadata object is present and non-empty.
// Presence is decided on the decoded value, so layout inside the object
// does not matter.
func hasContent(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return true
	}
	switch m := v.(type) {
	case nil:
		return false
	case map[string]any:
		return len(m) > 0
	default:
		return true
	}
}
