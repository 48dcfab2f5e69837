// Package export provides the export command, which writes the local plugin
// database as an inventory CSV.
package export

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/vstmap/internal/appcontext"
	"github.com/agentstation/vstmap/internal/cmd/alerts"
	"github.com/agentstation/vstmap/internal/cmd/cmdutil"
	"github.com/agentstation/vstmap/internal/cmd/hints"
	"github.com/agentstation/vstmap/pkg/constants"
	"github.com/agentstation/vstmap/pkg/errors"
	"github.com/agentstation/vstmap/pkg/exporter"
	"github.com/agentstation/vstmap/pkg/logging"
)

// Flags holds the export command flags.
type Flags struct {
	DB  string
	Out string
}

// NewCommand creates the export command using app context.
func NewCommand(appCtx appcontext.Interface) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "export",
		GroupID: "core",
		Short:   "Export the local plugin database as an inventory",
		Long: `Export reads the plugins table of a local plugin database and writes it
in the inventory layout (Company, Software, Version, SDK Version, Type),
ready to be passed to combine.

The database is taken from --db, then the db_path config key or the
VSTMAP_DB_PATH environment variable, then the first line of a .db_path
file in the working directory.`,
		Example: `  vstmap export --db ~/plugins.db
  vstmap export --out studio-b.csv
  vstmap export --out - | head`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, appCtx, flags)
		},
	}

	cmd.Flags().StringVar(&flags.DB, "db", "", "Path to the plugin database")
	cmd.Flags().StringVar(&flags.Out, "out", constants.DefaultExportFile,
		"Write the inventory to this file (- for stdout)")

	return cmd
}

func run(cmd *cobra.Command, appCtx appcontext.Interface, flags *Flags) error {
	explicit := flags.DB
	if explicit == "" {
		explicit = appCtx.DBPath()
	}

	cwd, err := os.Getwd()
	if err != nil {
		return errors.WrapIO("read", "working directory", err)
	}

	dbPath, err := exporter.ResolvePath(explicit, cwd)
	if err != nil {
		return err
	}

	client, err := appCtx.Client()
	if err != nil {
		return err
	}

	logger := appCtx.Logger()
	ctx := logging.WithLogger(cmd.Context(), logger)

	var n int
	if err := cmdutil.WriteOutput(cmd, flags.Out, func(w io.Writer) error {
		n, err = client.Export(ctx, dbPath, w)
		return err
	}); err != nil {
		return err
	}

	logger.Debug().Str("db", dbPath).Str("out", flags.Out).Msg("Export finished")

	if !cmdutil.IsStdout(flags.Out) {
		alertWriter := alerts.NewWriterTo(cmd.ErrOrStderr(), appCtx.NoColor())
		_ = alertWriter.WriteAlert(alerts.NewSuccess(fmt.Sprintf("Exported %d plugins to %s", n, flags.Out)))
		_ = hints.Write(cmd.ErrOrStderr(), hints.ForExport(flags.Out)...)
	}
	return nil
}
