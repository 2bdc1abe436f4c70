package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID    int64    `json:"id"`
	Code  string   `json:"code"`
	Note  string   `json:"note,omitempty"`
	Tags  []string `json:"tags"`
	Count string   `json:"count"`
}

func sample() []item {
	return []item{
		{ID: 1, Code: "WH01", Tags: []string{"a", "b"}, Count: "10"},
		{ID: 2, Code: "WH02", Note: "overflow"},
	}
}

func sampleRows() *Rows {
	rows := NewRows("ID", "CODE")
	for _, it := range sample() {
		rows.Add(it.ID, it.Code)
	}
	return rows
}

func TestPrint_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, JSON).Print(sample(), sampleRows))

	var got []item
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sample(), got)
	assert.Contains(t, buf.String(), "\n  {")
}

func TestPrint_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, YAML).Print(sample()[0], nil))

	out := buf.String()
	assert.Contains(t, out, "id: 1\n")
	assert.Contains(t, out, "code: WH01\n")
	assert.Contains(t, out, "tags:\n")
	assert.Contains(t, out, "- b\n")
	assert.Contains(t, out, `count: "10"`)
	assert.NotContains(t, out, "note")
	assert.NotContains(t, out, "{")
}

func TestPrint_Table(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, "")
	assert.Equal(t, Table, p.Format())

	require.NoError(t, p.Print(sample(), sampleRows))
	p.Message("Page %d of %d", 1, 1)

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "CODE")
	assert.Contains(t, out, "WH01")
	assert.Contains(t, out, "WH02")
	assert.Contains(t, out, "Page 1 of 1\n")
}

func TestPrint_TableWithoutRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, Table).Print(map[string]int{"total": 3}, nil))
	assert.Equal(t, "total: 3\n", buf.String())
}

func TestMessage_MachineFormats(t *testing.T) {
	for _, format := range []string{JSON, YAML} {
		var buf bytes.Buffer
		New(&buf, format).Message("hello")
		assert.Empty(t, buf.String(), format)
	}
}

func TestPrint_UnknownFormat(t *testing.T) {
	err := New(&bytes.Buffer{}, "xml").Print(sample(), sampleRows)
	assert.ErrorContains(t, err, `unknown output format "xml"`)
}
