// Package history provides the history command, which prints a provenance
// file written by combine --provenance.
package history

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/vstmap/internal/appcontext"
	"github.com/agentstation/vstmap/internal/cmd/output"
	"github.com/agentstation/vstmap/internal/cmd/table"
	"github.com/agentstation/vstmap/pkg/errors"
	"github.com/agentstation/vstmap/pkg/provenance"
	"github.com/agentstation/vstmap/pkg/sources"
)

// Flags holds the history command flags.
type Flags struct {
	Format string
	Source string
}

// NewCommand creates the history command using app context.
func NewCommand(appCtx appcontext.Interface) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "history <provenance.yaml>",
		GroupID: "management",
		Short:   "Show how each plugin's current version was decided",
		Long: `History prints a provenance file written by combine --provenance: for
every plugin, each inventory's observation in merge order, the version it
reported and what the current version was at that point.`,
		Example: `  vstmap history history.yaml
  vstmap history history.yaml --source studio-b
  vstmap history history.yaml --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, appCtx, flags, args[0])
		},
	}

	cmd.Flags().StringVarP(&flags.Format, "format", "f", string(output.FormatTable),
		"Output format: csv, table, json, yaml, markdown")
	cmd.Flags().StringVar(&flags.Source, "source", "",
		"Only show plugins this inventory contributed to")

	return cmd
}

func run(cmd *cobra.Command, appCtx appcontext.Interface, flags *Flags, path string) error {
	format, err := output.ParseFormat(flags.Format)
	if err != nil {
		return err
	}

	file, err := provenance.Load(path)
	if err != nil {
		return err
	}
	if file == nil {
		return errors.NewNotFoundError("provenance file", path)
	}

	entries := file.Entries
	if flags.Source != "" {
		tracker := provenance.NewTracker(true)
		for key, history := range file.Map() {
			for _, obs := range history {
				tracker.Track(key, obs)
			}
		}
		entries = tracker.FindBySource(sources.ID(flags.Source)).Entries()
	}

	appCtx.Logger().Debug().
		Str("path", path).
		Int("plugins", len(entries)).
		Msg("Loaded provenance")

	formatter := output.NewFormatter(format)
	switch format {
	case output.FormatTable, output.FormatCSV, output.FormatMarkdown:
		return formatter.Format(cmd.OutOrStdout(), table.ProvenanceToTableData(entries))
	default:
		return formatter.Format(cmd.OutOrStdout(), entries)
	}
}
