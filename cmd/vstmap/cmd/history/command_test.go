package history

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/vstmap/internal/appcontext"
	"github.com/agentstation/vstmap/pkg/errors"
	"github.com/agentstation/vstmap/pkg/inventory"
	"github.com/agentstation/vstmap/pkg/provenance"
	"github.com/agentstation/vstmap/pkg/sources"
	"github.com/agentstation/vstmap/pkg/versions"
)

func writeHistory(t *testing.T) string {
	t.Helper()
	synth := inventory.Key{Company: "Acme", Software: "Synth", Family: versions.Dotted}
	verb := inventory.Key{Company: "Beta", Software: "Verb", Family: versions.Numeric}
	m := provenance.Map{
		synth: {
			{Source: "main", Event: provenance.EventCreate, Version: "1.0", SDKVersion: "3.0", Line: 2},
			{Source: "extra", Event: provenance.EventNewer, Version: "2.0", SDKVersion: "3.0", Line: 2, Canonical: "1.0"},
		},
		verb: {
			{Source: "main", Event: provenance.EventCreate, Version: "2", SDKVersion: "2400", Line: 3},
		},
	}
	path := filepath.Join(t.TempDir(), "history.yaml")
	require.NoError(t, provenance.Save(path, provenance.NewFile([]sources.ID{"main", "extra"}, m)))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout bytes.Buffer
	cmd := NewCommand(&appcontext.Mock{})
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestHistoryCSV(t *testing.T) {
	path := writeHistory(t)

	stdout, err := execute(t, path, "--format", "csv")
	require.NoError(t, err)
	assert.Equal(t,
		"Company,Software,Family,Source,Event,Version,SDK Version,Line,Was,Reason\n"+
			"Acme,Synth,dotted,main,create,1.0,3.0,2,,\n"+
			",,,extra,newer,2.0,3.0,2,1.0,\n"+
			"Beta,Verb,numeric,main,create,2,2400,3,,\n",
		stdout)
}

func TestHistorySourceFilter(t *testing.T) {
	path := writeHistory(t)

	stdout, err := execute(t, path, "--source", "extra", "-f", "csv")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Acme,Synth")
	assert.NotContains(t, stdout, "Beta,Verb")
}

func TestHistoryTableAndYAML(t *testing.T) {
	path := writeHistory(t)

	stdout, err := execute(t, path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "newer")

	stdout, err = execute(t, path, "-f", "yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "software: Synth")
	assert.Contains(t, stdout, "event: newer")
}

func TestHistoryMissingFile(t *testing.T) {
	_, err := execute(t, filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}
