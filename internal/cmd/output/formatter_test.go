package output

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/vstmap/internal/cmd/table"
	"github.com/agentstation/vstmap/pkg/errors"
)

type selfWriting struct{}

func (selfWriting) WriteCSV(w io.Writer) error {
	_, err := io.WriteString(w, "a,b\n")
	return err
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"":         FormatCSV,
		"csv":      FormatCSV,
		"TABLE":    FormatTable,
		" json ":   FormatJSON,
		"yaml":     FormatYAML,
		"markdown": FormatMarkdown,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "markdown")

	_, err = ParseFormat("md")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestCSVFormatter(t *testing.T) {
	t.Run("self writing", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatCSV).Format(&buf, selfWriting{}))
		assert.Equal(t, "a,b\n", buf.String())
	})

	t.Run("table data", func(t *testing.T) {
		var buf bytes.Buffer
		data := table.Data{Headers: []string{"Company", "Remarks"}, Rows: [][]string{{"Acme, Inc.", "ok"}}}
		require.NoError(t, NewFormatter(FormatCSV).Format(&buf, data))
		assert.Equal(t, "Company,Remarks\n\"Acme, Inc.\",ok\n", buf.String())
	})

	t.Run("unsupported", func(t *testing.T) {
		assert.Error(t, NewFormatter(FormatCSV).Format(io.Discard, 42))
	})
}

func TestJSONAndYAMLFormatters(t *testing.T) {
	data := map[string]any{"sources": []string{"main", "extra"}}

	var js bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON).Format(&js, data))
	assert.JSONEq(t, `{"sources":["main","extra"]}`, js.String())

	var ys bytes.Buffer
	require.NoError(t, NewFormatter(FormatYAML).Format(&ys, data))
	assert.Equal(t, "sources:\n- main\n- extra\n", ys.String())
}

func TestTableFormatter(t *testing.T) {
	data := table.Data{
		Headers:         []string{"Software", "Status"},
		Rows:            [][]string{{"Synth", "Ok"}, {"Verb", "Missing"}},
		ColumnAlignment: []table.Align{table.AlignLeft, table.AlignRight},
	}

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, data))
	out := buf.String()
	assert.Contains(t, out, "Synth")
	assert.Contains(t, out, "Missing")

	var fallback bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&fallback, []int{1}))
	assert.JSONEq(t, `[1]`, fallback.String())
}

func TestMarkdownFormatter(t *testing.T) {
	data := table.Data{
		Headers: []string{"Software", "Status"},
		Rows:    [][]string{{"Synth", "Ok"}},
	}

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatMarkdown).Format(&buf, data))
	out := buf.String()
	assert.Contains(t, out, "| Software")
	assert.Contains(t, out, "| Synth")
	assert.Contains(t, out, "---")

	assert.Error(t, NewFormatter(FormatMarkdown).Format(io.Discard, "not a table"))
}
