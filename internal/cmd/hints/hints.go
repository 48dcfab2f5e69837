// Package hints suggests the next command after a successful run.
package hints

import (
	"fmt"
	"io"
	"strings"

	"github.com/agentstation/vstmap/pkg/report"
)

// Hint represents actionable user guidance.
type Hint struct {
	Message string // Human-readable guidance message
	Command string // Optional specific command to run
}

// New creates a new hint with the given message.
func New(message string) *Hint {
	return &Hint{Message: message}
}

// NewCommand creates a new hint with a specific command.
func NewCommand(message, command string) *Hint {
	return &Hint{Message: message, Command: command}
}

// String returns a string representation of the hint.
func (h *Hint) String() string {
	parts := []string{"hint: " + h.Message}
	if h.Command != "" {
		parts = append(parts, "   Run: "+h.Command)
	}
	return strings.Join(parts, "\n")
}

// Write prints hints to w, one block per hint.
func Write(w io.Writer, hs ...*Hint) error {
	for _, h := range hs {
		if _, err := fmt.Fprintln(w, h.String()); err != nil {
			return err
		}
	}
	return nil
}

// ForReport suggests how to follow up on plugins that are not ready
// everywhere. provenanceFile is the history written by this run, if any.
func ForReport(rep *report.Report, provenanceFile string) []*Hint {
	tally := rep.Tally()
	pending := tally[report.VerdictNo] + tally[report.VerdictCheck]
	if pending == 0 {
		return nil
	}

	msg := fmt.Sprintf("%d of %d plugins are not ready in every inventory", pending, len(rep.Rows))
	if provenanceFile != "" {
		return []*Hint{NewCommand(msg+"; see how each version was decided",
			"vstmap history "+provenanceFile)}
	}
	return []*Hint{NewCommand(msg+"; record how each version was decided",
		"vstmap combine <main.csv> <additional.csv>... --provenance history.yaml")}
}

// ForExport suggests comparing a freshly exported inventory.
func ForExport(out string) []*Hint {
	return []*Hint{NewCommand("Compare this inventory with the others",
		"vstmap combine <main.csv> "+out)}
}
