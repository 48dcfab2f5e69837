// Package cmdutil provides shared flags and output helpers for vstmap commands.
package cmdutil

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/vstmap/internal/cmd/output"
	"github.com/agentstation/vstmap/pkg/constants"
	"github.com/agentstation/vstmap/pkg/errors"
)

// OutputFlags holds the flags that control where and how a command writes.
type OutputFlags struct {
	Format string
	Out    string
}

// AddOutputFlags adds --format and --out to a command.
func AddOutputFlags(cmd *cobra.Command, defaultFormat output.Format, defaultOut string) *OutputFlags {
	flags := &OutputFlags{}

	names := make([]string, 0, len(output.Formats()))
	for _, f := range output.Formats() {
		names = append(names, string(f))
	}

	cmd.Flags().StringVarP(&flags.Format, "format", "f", string(defaultFormat),
		"Output format: "+strings.Join(names, ", "))
	cmd.Flags().StringVar(&flags.Out, "out", defaultOut,
		"Write output to this file instead of stdout (- for stdout)")

	return flags
}

// IsStdout reports whether path designates the command's standard output.
func IsStdout(path string) bool {
	return path == "" || path == "-"
}

// WriteOutput calls write with the command's stdout, or with a newly
// created file at path. A failed write removes the partial file.
func WriteOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if IsStdout(path) {
		return write(cmd.OutOrStdout())
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return errors.WrapIO("create", dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}

	if err := write(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return errors.WrapIO("close", path, err)
	}
	return nil
}
