// Package output provides formatters for command output.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	md "github.com/nao1215/markdown"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/agentstation/vstmap/internal/cmd/table"
	"github.com/agentstation/vstmap/pkg/errors"
)

// Format types for output.
type Format string

const (
	// FormatCSV represents comma-separated output, the default for reports.
	FormatCSV Format = "csv"
	// FormatTable represents table output format.
	FormatTable Format = "table"
	// FormatJSON represents JSON output format.
	FormatJSON Format = "json"
	// FormatYAML represents YAML output format.
	FormatYAML Format = "yaml"
	// FormatMarkdown represents a markdown table, for pasting into wikis and tickets.
	FormatMarkdown Format = "markdown"
)

// Formats lists every supported format in help order.
func Formats() []Format {
	return []Format{FormatCSV, FormatTable, FormatJSON, FormatYAML, FormatMarkdown}
}

// Formatter interface for all output types.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// FormatterFunc allows functions to implement Formatter.
type FormatterFunc func(io.Writer, any) error

// Format implements the Formatter interface.
func (f FormatterFunc) Format(w io.Writer, data any) error {
	return f(w, data)
}

// CSVWriter is implemented by values that know their own CSV layout.
type CSVWriter interface {
	WriteCSV(w io.Writer) error
}

// NewFormatter creates appropriate formatter based on format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatTable:
		return &TableFormatter{}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	default:
		return &CSVFormatter{}
	}
}

// CSVFormatter outputs CSV.
type CSVFormatter struct{}

// Format writes data as CSV. Values implementing CSVWriter write themselves;
// table data is written header first.
func (f *CSVFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case CSVWriter:
		return v.WriteCSV(w)
	case table.Data:
		cw := csv.NewWriter(w)
		if len(v.Headers) > 0 {
			if err := cw.Write(v.Headers); err != nil {
				return err
			}
		}
		if err := cw.WriteAll(v.Rows); err != nil {
			return err
		}
		return cw.Error()
	default:
		return fmt.Errorf("csv output is not supported for %T", data)
	}
}

// JSONFormatter outputs JSON format.
type JSONFormatter struct {
	Indent string
}

// Format implements the Formatter interface for JSON output.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent != "" {
		encoder.SetIndent("", f.Indent)
	}
	return encoder.Encode(data)
}

// YAMLFormatter outputs YAML format.
type YAMLFormatter struct{}

// Format outputs data in YAML format.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	yamlData, err := yaml.MarshalWithOptions(data,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(yamlData)
	return err
}

// TableFormatter outputs table format.
type TableFormatter struct{}

// Format outputs data in table format. Anything that is not table data
// falls back to JSON.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case table.Data:
		return f.formatTable(w, v)
	case *table.Data:
		return f.formatTable(w, *v)
	default:
		jsonFormatter := &JSONFormatter{Indent: "  "}
		return jsonFormatter.Format(w, data)
	}
}

func (f *TableFormatter) formatTable(w io.Writer, data table.Data) error {
	config := tablewriter.Config{}

	if len(data.ColumnAlignment) > 0 {
		twAlign := make([]tw.Align, len(data.ColumnAlignment))
		for i, align := range data.ColumnAlignment {
			switch align {
			case table.AlignLeft:
				twAlign[i] = tw.AlignLeft
			case table.AlignCenter:
				twAlign[i] = tw.AlignCenter
			case table.AlignRight:
				twAlign[i] = tw.AlignRight
			default:
				twAlign[i] = tw.Skip
			}
		}

		config.Header.Alignment = tw.CellAlignment{PerColumn: twAlign}
		config.Row.Alignment = tw.CellAlignment{PerColumn: twAlign}
	}

	tbl := tablewriter.NewTable(w, tablewriter.WithConfig(config))

	if len(data.Headers) > 0 {
		headers := make([]any, len(data.Headers))
		for i, h := range data.Headers {
			headers[i] = h
		}
		tbl.Header(headers...)
	}

	for _, row := range data.Rows {
		rowData := make([]any, len(row))
		for i, cell := range row {
			rowData[i] = cell
		}
		if err := tbl.Append(rowData...); err != nil {
			return err
		}
	}

	return tbl.Render()
}

// MarkdownFormatter outputs a markdown table.
type MarkdownFormatter struct{}

// Format writes table data as a markdown table. Anything that is not table
// data is an error.
func (f *MarkdownFormatter) Format(w io.Writer, data any) error {
	var v table.Data
	switch d := data.(type) {
	case table.Data:
		v = d
	case *table.Data:
		v = *d
	default:
		return fmt.Errorf("markdown output is not supported for %T", data)
	}

	rows := v.Rows
	if rows == nil {
		rows = [][]string{}
	}
	return md.NewMarkdown(w).
		Table(md.TableSet{Header: v.Headers, Rows: rows}).
		Build()
}

// ParseFormat converts string to Format with validation. An empty string
// selects csv.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(s)))
	if format == "" {
		return FormatCSV, nil
	}
	for _, f := range Formats() {
		if f == format {
			return format, nil
		}
	}
	return "", errors.NewValidationError("format", s, "must be one of: csv, table, json, yaml, markdown")
}
