package app

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/agentstation/vstmap/cmd/vstmap/cmd/combine"
	"github.com/agentstation/vstmap/cmd/vstmap/cmd/export"
	"github.com/agentstation/vstmap/cmd/vstmap/cmd/history"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(combine.NewCommand(a))
	rootCmd.AddCommand(export.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(history.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.NewVersionCommand())
	rootCmd.AddCommand(a.NewManCommand())
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "vstmap %s\n", a.version)
			if a.config.Verbose {
				fmt.Fprintf(cmd.OutOrStdout(), "  commit:   %s\n", a.commit)
				fmt.Fprintf(cmd.OutOrStdout(), "  built:    %s\n", a.date)
				fmt.Fprintf(cmd.OutOrStdout(), "  built by: %s\n", a.builtBy)
				fmt.Fprintf(cmd.OutOrStdout(), "  go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			}
		},
	}
}

// NewManCommand creates the hidden man command, which writes the man page
// for the whole command tree.
func (a *App) NewManCommand() *cobra.Command {
	return &cobra.Command{
		Use:    "man",
		Short:  "Generate man page",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			header := &doc.GenManHeader{
				Title:   "VSTMAP",
				Section: "1",
				Source:  "vstmap " + a.version,
				Manual:  "vstmap Manual",
			}
			return doc.GenMan(cmd.Root(), header, cmd.OutOrStdout())
		},
	}
}
