package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/vstmap/pkg/errors"
)

const header = "Company,Software,Version,SDK Version,Type\n"

func newTestApp(t *testing.T, config *Config) *App {
	t.Helper()
	logger := zerolog.Nop()
	if config == nil {
		config = &Config{LogOutput: "discard"}
	}
	a, err := New("1.2.3", "abc123", "2026-01-01", "test", WithConfig(config), WithLogger(&logger))
	require.NoError(t, err)
	return a
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, a *App, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := a.createRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestApp_New(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	a, err := New("1.0.0", "abc123", "2026-01-01", "test")
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", a.Version())
	assert.Equal(t, "abc123", a.Commit())
	assert.Equal(t, "2026-01-01", a.Date())
	assert.Equal(t, "test", a.BuiltBy())
	assert.NotNil(t, a.Logger())
	assert.NotNil(t, a.Config())
}

func TestApp_Client(t *testing.T) {
	a := newTestApp(t, &Config{Concurrency: 2, DBPath: "/data/plugins.db", NoColor: true})

	c, err := a.Client()
	require.NoError(t, err)
	assert.NotNil(t, c)
	assert.Equal(t, "/data/plugins.db", a.DBPath())
	assert.True(t, a.NoColor())

	bad := newTestApp(t, &Config{Concurrency: -1})
	_, err = bad.Client()
	assert.NoError(t, err, "non-positive configured concurrency keeps the default")
}

func TestVersionCommand(t *testing.T) {
	a := newTestApp(t, nil)

	stdout, _, err := execute(t, a, "version")
	require.NoError(t, err)
	assert.Equal(t, "vstmap 1.2.3\n", stdout)

	stdout, _, err = execute(t, a, "version", "-v", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, stdout, "commit:   abc123")
	assert.Contains(t, stdout, "built by: test")
}

func TestManCommand(t *testing.T) {
	a := newTestApp(t, nil)

	stdout, _, err := execute(t, a, "man")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"VSTMAP"`)
	assert.Contains(t, stdout, "combine")
}

func TestCombineCommand(t *testing.T) {
	dir := t.TempDir()
	main := filepath.Join(dir, "main.csv")
	extra := filepath.Join(dir, "extra.csv")
	require.NoError(t, os.WriteFile(main, []byte(header+"Acme,Synth,1.0,3.0,Fx\n"), 0o644))
	require.NoError(t, os.WriteFile(extra, []byte(header+"Acme,Synth,1.0,3.0,Fx\n"), 0o644))

	a := newTestApp(t, nil)

	stdout, _, err := execute(t, a, "combine", main, extra)
	require.NoError(t, err)
	assert.Equal(t,
		"Company,Software,Version,SDK Version,Type,main,extra,Collaboration Material,Remarks\n"+
			"Acme,Synth,1.0,3.0,Fx,Ok,Ok,Yes,\n",
		stdout)
}

func TestCombineCommandTooFewFiles(t *testing.T) {
	a := newTestApp(t, nil)

	stdout, stderr, err := execute(t, a, "combine", "main.csv")
	require.Error(t, err)
	assert.True(t, errors.IsConfig(err))

	// cobra prints usage to the output writer once one is set.
	usage := stdout + stderr
	assert.Contains(t, usage, "Usage:")
	assert.Contains(t, usage, "vstmap combine <main.csv> <additional.csv>...")
}

func TestConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vstmap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_output: discard\n"), 0o644))

	a := newTestApp(t, nil)
	_, _, err := execute(t, a, "version", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, path, a.Config().ConfigFile)

	_, _, err = execute(t, a, "version", "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
