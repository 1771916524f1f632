// Package report renders run verdicts and history for the terminal.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ember-os/hwci/internal/harness"
	"github.com/ember-os/hwci/internal/store"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true)
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Verdict renders the final pass/fail statement for a run.
func Verdict(r harness.Result) string {
	label := successStyle.Render("PASS")
	switch r.Outcome {
	case harness.Failed:
		label = failureStyle.Render("FAIL")
	case harness.HarnessError:
		label = warningStyle.Render("ERROR")
	}

	line := fmt.Sprintf("%s  %s on %s (%s)", label, r.Test, r.Board, r.Duration.Round(time.Millisecond))
	if r.Reason != "" {
		line += "\n" + dimStyle.Render("  "+r.Reason)
	}
	return line
}

// History renders recorded runs, newest last.
func History(records []store.RunRecord) string {
	if len(records) == 0 {
		return dimStyle.Render("no runs recorded")
	}

	var b strings.Builder
	for _, r := range records {
		mark := successStyle.Render("✓")
		if r.Outcome != "passed" {
			mark = failureStyle.Render("✗")
		}
		fmt.Fprintf(&b, "%s %s  %-12s %-14s %-13s %s\n",
			mark,
			r.Timestamp.Format("2006-01-02 15:04:05"),
			r.Board, r.Test, r.Outcome, r.Duration)
		if r.Reason != "" {
			b.WriteString(dimStyle.Render("    "+r.Reason) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
