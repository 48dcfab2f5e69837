// Package vstmap reconciles plugin inventories kept by several studios or
// machines into one report, and exports the inventory of a local plugin
// database in the same tabular layout.
//
// Example usage:
//
//	client, err := vstmap.New(vstmap.WithConcurrency(4))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	combined, err := client.Combine(ctx, []string{"main.csv", "studio-b.csv"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = combined.Report.WriteCSV(os.Stdout)
package vstmap

import (
	"context"
	"io"

	"github.com/agentstation/vstmap/internal/sources/csvfile"
	"github.com/agentstation/vstmap/pkg/errors"
	"github.com/agentstation/vstmap/pkg/exporter"
	"github.com/agentstation/vstmap/pkg/logging"
	"github.com/agentstation/vstmap/pkg/provenance"
	"github.com/agentstation/vstmap/pkg/reconciler"
	"github.com/agentstation/vstmap/pkg/report"
	"github.com/agentstation/vstmap/pkg/sources"
)

// Client combines inventories and exports plugin databases.
type Client interface {
	// Combine merges the inventory files in order: the first path is the main
	// inventory, the rest are additional inventories.
	Combine(ctx context.Context, paths []string) (*Combined, error)

	// Export writes the plugin database at dbPath as an inventory CSV and
	// returns the number of plugins written.
	Export(ctx context.Context, dbPath string, w io.Writer) (int, error)

	// OnSourceSkipped registers a callback for additional sources that could
	// not be used.
	OnSourceSkipped(SourceSkippedHook)

	// OnMismatch registers a callback for report rows whose verdict is not Yes.
	OnMismatch(MismatchHook)
}

// Combined is the outcome of a Combine call.
type Combined struct {
	Result *reconciler.Result
	Report *report.Report
}

// client is the internal implementation of the Client interface.
type client struct {
	config *config
	hooks  *hooks
}

// New creates a new Client with the given options.
func New(opts ...Option) (Client, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return &client{config: cfg, hooks: newHooks()}, nil
}

// Combine merges the inventory files in order.
func (c *client) Combine(ctx context.Context, paths []string) (*Combined, error) {
	if len(paths) < 2 {
		return nil, errors.NewConfigError("combine",
			"at least two inventory files are required: <main> <additional>...", nil)
	}

	ctx = logging.WithOperation(ctx, "combine")

	loaded := sources.LoadAll(ctx, csvfile.FromPaths(paths), c.config.concurrency)

	r, err := reconciler.New(
		reconciler.WithProvenance(c.config.provenanceFile != ""),
		reconciler.WithRequiredColumns(c.config.requiredColumns...),
	)
	if err != nil {
		return nil, err
	}

	result, err := r.Merge(ctx, loaded[0], loaded[1:])
	if err != nil {
		return nil, err
	}

	for _, w := range result.Warnings {
		if w.Line == 0 {
			c.hooks.sourceSkipped(w)
		}
	}

	if c.config.provenanceFile != "" {
		if err := provenance.Save(c.config.provenanceFile, provenance.NewFile(result.Sources, result.Provenance)); err != nil {
			return nil, errors.WrapIO("write", c.config.provenanceFile, err)
		}
		logging.FromContext(ctx).Debug().Str("path", c.config.provenanceFile).Msg("Saved provenance")
	}

	rep := report.New(result)
	for _, row := range rep.Rows {
		if row.Collaboration != report.VerdictYes {
			c.hooks.mismatch(row)
		}
	}

	return &Combined{Result: result, Report: rep}, nil
}

// Export writes the plugin database at dbPath as an inventory CSV.
func (c *client) Export(ctx context.Context, dbPath string, w io.Writer) (int, error) {
	ctx = logging.WithOperation(ctx, "export")

	e, err := exporter.Open(ctx, dbPath)
	if err != nil {
		return 0, err
	}
	defer func() { _ = e.Close() }()

	return e.Export(ctx, w)
}

// OnSourceSkipped registers a callback for skipped sources.
func (c *client) OnSourceSkipped(fn SourceSkippedHook) {
	c.hooks.OnSourceSkipped(fn)
}

// OnMismatch registers a callback for rows that need attention.
func (c *client) OnMismatch(fn MismatchHook) {
	c.hooks.OnMismatch(fn)
}
