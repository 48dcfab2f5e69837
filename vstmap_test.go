package vstmap

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/vstmap/pkg/errors"
	"github.com/agentstation/vstmap/pkg/provenance"
	"github.com/agentstation/vstmap/pkg/reconciler"
	"github.com/agentstation/vstmap/pkg/report"
	"github.com/agentstation/vstmap/pkg/sources"
)

const header = "Company,Software,Version,SDK Version,Type\n"

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCombine(t *testing.T) {
	dir := t.TempDir()
	main := write(t, dir, "main.csv", header+"Acme,Synth,1.0.0,3.0.0,Instrument\nBeta,Verb,2,2400,Fx\n")
	extra := write(t, dir, "extra.csv", header+"Acme,Synth,1.1.0,3.0.0,Instrument\n")
	bad := write(t, dir, "bad.csv", "Company,Software\nAcme,Synth\n")

	c, err := New(WithConcurrency(2))
	require.NoError(t, err)

	var skipped []reconciler.Warning
	var mismatched []report.Row
	c.OnSourceSkipped(func(w reconciler.Warning) { skipped = append(skipped, w) })
	c.OnMismatch(func(row report.Row) { mismatched = append(mismatched, row) })

	combined, err := c.Combine(context.Background(), []string{main, extra, bad})
	require.NoError(t, err)

	assert.Equal(t, []sources.ID{"main", "extra", "bad"}, combined.Report.Sources)
	require.Len(t, combined.Report.Rows, 2)

	synth := combined.Report.Rows[0]
	assert.Equal(t, "Synth", synth.Software)
	assert.Equal(t, "1.1.0", synth.Version)
	assert.Equal(t, report.VerdictNo, synth.Collaboration)
	assert.Equal(t, "Current: v1.1.0; main: v1.0.0", synth.Remarks)

	require.Len(t, skipped, 1)
	assert.Equal(t, sources.ID("bad"), skipped[0].Source)
	assert.Len(t, mismatched, 2)

	assert.NotZero(t, combined.Result.Checksums["main"])
	assert.Empty(t, combined.Result.Provenance, "provenance is off unless a file is requested")
}

func TestCombineTooFewFiles(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	for _, paths := range [][]string{nil, {"main.csv"}} {
		_, err := c.Combine(context.Background(), paths)
		require.Error(t, err)
		assert.True(t, errors.IsConfig(err))
	}
}

func TestCombineMainMissing(t *testing.T) {
	dir := t.TempDir()
	extra := write(t, dir, "extra.csv", header)

	c, err := New()
	require.NoError(t, err)

	_, err = c.Combine(context.Background(), []string{filepath.Join(dir, "absent.csv"), extra})
	require.Error(t, err)
	assert.True(t, errors.IsSourceFormat(err))
	assert.Contains(t, err.Error(), "absent.csv")
}

func TestCombineWritesProvenance(t *testing.T) {
	dir := t.TempDir()
	main := write(t, dir, "main.csv", header+"Acme,Synth,1.0.0,3.0.0,Instrument\n")
	extra := write(t, dir, "extra.csv", header+"Acme,Synth,1.1.0,3.0.0,Instrument\n")
	out := filepath.Join(dir, "history", "provenance.yaml")

	c, err := New(WithProvenanceFile(out))
	require.NoError(t, err)

	_, err = c.Combine(context.Background(), []string{main, extra})
	require.NoError(t, err)

	f, err := provenance.Load(out)
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, []sources.ID{"main", "extra"}, f.Sources)
	require.Len(t, f.Entries, 1)
	assert.Len(t, f.Entries[0].Observations, 2)
}

func TestExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plugins.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE plugins (vendor TEXT, name TEXT, version TEXT, sdk_version TEXT, subcategories TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO plugins VALUES ('Acme', 'Synth', '1.0.0', '3.7.6', 'Instrument')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	c, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := c.Export(context.Background(), path, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, header+"Acme,Synth,1.0.0,3.7.6,Instrument\n", buf.String())
}

func TestOptions(t *testing.T) {
	_, err := New(WithConcurrency(0))
	assert.True(t, errors.IsValidationError(err))

	_, err = New(WithRequiredColumns())
	assert.True(t, errors.IsValidationError(err))
}

// TestExportThenCombine exports a studio's plugin database and combines the
// result with a hand-kept main inventory.
func TestExportThenCombine(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "studio.db")
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE plugins (vendor TEXT, name TEXT, version TEXT, sdk_version TEXT, subcategories TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO plugins VALUES ('Acme', 'Synth', '1.2.0', '3.7.6', 'Instrument'), ('Beta', 'Verb', '2', '2400', 'Fx')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	c, err := New()
	require.NoError(t, err)

	f, err := os.Create(filepath.Join(dir, "studio.csv"))
	require.NoError(t, err)
	n, err := c.Export(context.Background(), dbPath, f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, 2, n)

	main := write(t, dir, "main.csv", header+"Acme,Synth,1.2.0,3.7.6,Instrument\nBeta,Verb,1,2400,Fx\n")

	combined, err := c.Combine(context.Background(), []string{main, f.Name()})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, combined.Report.WriteCSV(&buf))
	assert.Equal(t,
		"Company,Software,Version,SDK Version,Type,main,studio,Collaboration Material,Remarks\n"+
			"Acme,Synth,1.2.0,3.7.6,Instrument,Ok,Ok,Yes,\n"+
			"Beta,Verb,2,2400,Fx,Update,Ok,Check version,Current: v2; main: v1\n",
		buf.String())
}
