// Package output renders command results as a table, JSON or YAML.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/rodaine/table"
	"gopkg.in/yaml.v3"
)

// Formats
const (
	Table = "table"
	JSON  = "json"
	YAML  = "yaml"
)

// Rows is the tabular form of a result
type Rows struct {
	Header []string
	Rows   [][]any
}

// NewRows starts a table with the given header
func NewRows(header ...string) *Rows {
	return &Rows{Header: header}
}

// Add appends one row
func (r *Rows) Add(values ...any) *Rows {
	r.Rows = append(r.Rows, values)
	return r
}

// Printer writes results in the configured format
type Printer struct {
	out    io.Writer
	format string
}

func New(out io.Writer, format string) *Printer {
	if format == "" {
		format = Table
	}
	return &Printer{out: out, format: format}
}

// Format returns the configured format
func (p *Printer) Format() string {
	return p.format
}

// Writer returns the destination of every result
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Print writes v as JSON or YAML, or calls rows to build the table.
// rows may be nil, in which case tables fall back to YAML.
func (p *Printer) Print(v any, rows func() *Rows) error {
	switch p.format {
	case JSON:
		enc := json.NewEncoder(p.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case YAML:
		return p.yaml(v)
	case Table:
		if rows == nil {
			return p.yaml(v)
		}
		p.table(rows())
		return nil
	default:
		return fmt.Errorf("unknown output format %q", p.format)
	}
}

// Message writes a plain line in table mode and nothing otherwise
func (p *Printer) Message(format string, args ...any) {
	if p.format != Table {
		return
	}
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) table(r *Rows) {
	header := make([]any, len(r.Header))
	for i, h := range r.Header {
		header[i] = h
	}

	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()

	tbl := table.New(header...).WithWriter(p.out)
	tbl.WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt)
	for _, row := range r.Rows {
		tbl.AddRow(row...)
	}
	tbl.Print()
}

// yaml goes through JSON so field names and order follow the json tags
func (p *Printer) yaml(v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return err
	}
	blockStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err = p.out.Write(buf.Bytes())
	return err
}

// blockStyle clears the flow and quoting styles JSON input leaves behind
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
