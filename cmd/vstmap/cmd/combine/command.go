// Package combine provides the combine command, which merges inventories
// into the readiness report.
package combine

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/vstmap"
	"github.com/agentstation/vstmap/internal/appcontext"
	"github.com/agentstation/vstmap/internal/cmd/alerts"
	"github.com/agentstation/vstmap/internal/cmd/cmdutil"
	"github.com/agentstation/vstmap/internal/cmd/hints"
	"github.com/agentstation/vstmap/internal/cmd/output"
	"github.com/agentstation/vstmap/internal/cmd/table"
	"github.com/agentstation/vstmap/pkg/logging"
	"github.com/agentstation/vstmap/pkg/reconciler"
	"github.com/agentstation/vstmap/pkg/report"
)

// Flags holds the combine command flags.
type Flags struct {
	*cmdutil.OutputFlags
	Provenance  string
	Concurrency int
}

// NewCommand creates the combine command using app context.
func NewCommand(appCtx appcontext.Interface) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "combine <main.csv> <additional.csv>...",
		GroupID: "core",
		Short:   "Merge inventories into one readiness report",
		Long: `Combine merges a main inventory with one or more additional inventories.

Every plugin gets one status column per inventory (Ok, Missing or Update),
a Collaboration Material verdict and remarks naming every inventory that
holds an older version. The first file is the main inventory; additional
inventories are merged in the order given, and one that cannot be read is
reported and left Missing for every plugin.`,
		Example: `  vstmap combine main.csv studio-b.csv
  vstmap combine main.csv b.csv c.csv --format table
  vstmap combine main.csv b.csv --out report.csv --provenance history.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, appCtx, flags, args)
		},
	}

	flags = &Flags{OutputFlags: cmdutil.AddOutputFlags(cmd, output.FormatCSV, "")}
	cmd.Flags().StringVar(&flags.Provenance, "provenance", "",
		"Write the merge history of every plugin to this YAML file")
	cmd.Flags().IntVar(&flags.Concurrency, "concurrency", 0,
		"Number of inventories read at once (default from config)")

	return cmd
}

func run(cmd *cobra.Command, appCtx appcontext.Interface, flags *Flags, args []string) error {
	format, err := output.ParseFormat(flags.Format)
	if err != nil {
		return err
	}

	if len(args) < 2 {
		_ = cmd.Usage()
	}

	var opts []vstmap.Option
	if flags.Concurrency > 0 {
		opts = append(opts, vstmap.WithConcurrency(flags.Concurrency))
	}
	if flags.Provenance != "" {
		opts = append(opts, vstmap.WithProvenanceFile(flags.Provenance))
	}

	client, err := appCtx.Client(opts...)
	if err != nil {
		return err
	}

	alertWriter := alerts.NewWriterTo(cmd.ErrOrStderr(), appCtx.NoColor())
	client.OnSourceSkipped(func(w reconciler.Warning) {
		_ = alertWriter.WriteAlert(alerts.NewWarning(w.Message))
	})

	logger := appCtx.Logger()
	ctx := logging.WithLogger(cmd.Context(), logger)

	combined, err := client.Combine(ctx, args)
	if err != nil {
		return err
	}

	for _, w := range combined.Result.Warnings {
		if w.Line > 0 {
			_ = alertWriter.WriteAlert(alerts.NewWarning(w.String()))
		}
	}

	if err := cmdutil.WriteOutput(cmd, flags.Out, func(w io.Writer) error {
		return Format(w, format, combined.Report)
	}); err != nil {
		return err
	}

	tally := combined.Report.Tally()
	logger.Info().
		Int("plugins", len(combined.Report.Rows)).
		Int("ready", tally[report.VerdictYes]).
		Int("missing", tally[report.VerdictNo]).
		Int("stale", tally[report.VerdictCheck]).
		Msg(combined.Result.Summary())

	if !cmdutil.IsStdout(flags.Out) {
		msg := fmt.Sprintf("Wrote %d plugins from %d inventories to %s",
			len(combined.Report.Rows), len(combined.Report.Sources), flags.Out)
		_ = alertWriter.WriteAlert(alerts.NewSuccess(msg))
		_ = hints.Write(cmd.ErrOrStderr(), hints.ForReport(combined.Report, flags.Provenance)...)
	}
	return nil
}

// Format writes a report in the given format. Tables and markdown carry
// status symbols; csv is the plain report layout.
func Format(w io.Writer, format output.Format, rep *report.Report) error {
	formatter := output.NewFormatter(format)
	switch format {
	case output.FormatTable, output.FormatMarkdown:
		return formatter.Format(w, table.ReportToTableData(rep))
	default:
		return formatter.Format(w, rep)
	}
}
