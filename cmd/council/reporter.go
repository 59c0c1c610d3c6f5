package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/unbobounbobo/press-council/internal/catalog"
	"github.com/unbobounbobo/press-council/internal/council"
)

// reporter prints pipeline progress and the final summary to the terminal.
//
//nolint:errcheck // display-only writes; errors are not actionable
type reporter struct {
	out     io.Writer
	cat     *catalog.Catalog
	verbose bool
}

func newReporter(out io.Writer, cat *catalog.Catalog, verbose bool) *reporter {
	return &reporter{out: out, cat: cat, verbose: verbose}
}

//nolint:errcheck
func (r *reporter) handleEvent(ev council.Event) {
	switch ev.Type {
	case council.EventRunConfigured:
		meta := ev.Metadata
		fmt.Fprintf(r.out, "Preset: %s  severity: %d\n", meta.PresetID, meta.Severity)
		fmt.Fprintf(r.out, "Writers: %s  editor: %s  evaluations: %d\n\n",
			strings.Join(meta.Writers, ", "), meta.Editor, len(meta.Assignments))

	case council.EventDraftingStarted:
		fmt.Fprintln(r.out, "▶ Drafting...")

	case council.EventDraftingComplete:
		for _, d := range ev.Drafts {
			fmt.Fprintf(r.out, "  ✓ %s (%s)\n", d.BackendName, d.Model)
		}
		fmt.Fprintf(r.out, "  %d draft(s) produced\n\n", len(ev.Drafts))

	case council.EventEvaluatingStarted:
		fmt.Fprintln(r.out, "▶ Evaluating...")

	case council.EventEvaluatingComplete:
		for _, e := range ev.Evaluations {
			marker := "✓"
			if len(e.Ranking) == 0 {
				marker = "—"
			}
			fmt.Fprintf(r.out, "  %s %s as %s\n", marker, e.BackendName, e.ProfileName)
		}
		fmt.Fprintf(r.out, "  %d evaluation(s) collected\n\n", len(ev.Evaluations))

	case council.EventSynthesizingStarted:
		fmt.Fprintln(r.out, "▶ Synthesizing...")

	case council.EventSynthesizingComplete:
		if ev.Synthesis.Error {
			fmt.Fprintf(r.out, "  ✗ %s degraded\n\n", ev.Synthesis.BackendName)
		} else {
			fmt.Fprintf(r.out, "  ✓ %s\n\n", ev.Synthesis.BackendName)
		}

	case council.EventRunFailed:
		fmt.Fprintf(r.out, "\n✗ %s\n", ev.Message)
	}
}

// printSummary renders the leaderboard, the verdicts when verbose, and the
// final release.
//
//nolint:errcheck
func (r *reporter) printSummary(result *council.Result, elapsed time.Duration) {
	meta := result.Metadata

	if len(meta.Aggregate) > 0 {
		fmt.Fprintln(r.out, "Ranking (lower is better):")
		r.printLeaderboard(meta)
		fmt.Fprintln(r.out)
	}

	if r.verbose {
		for _, e := range result.Evaluations {
			fmt.Fprintf(r.out, "--- %s as %s ---\n%s\n\n", e.BackendName, e.ProfileName, e.Verdict)
		}
	}

	fmt.Fprintln(r.out, "═══ Final release ═══")
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, result.Synthesis.Content)
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Done in %s\n", formatDuration(elapsed))
}

//nolint:errcheck
func (r *reporter) printLeaderboard(meta council.Metadata) {
	const labelWidth, originWidth = 10, 24

	fmt.Fprintf(r.out, "  %s %s %6s %6s %5s\n",
		padRight("Label", labelWidth), padRight("Backend", originWidth), "Mean", "StdDev", "Votes")

	for _, row := range meta.Aggregate {
		origin := row.OriginID
		if b := r.cat.Backend(origin); b != nil {
			origin = b.Name
		}
		fmt.Fprintf(r.out, "  %s %s %6.2f %6.2f %5d\n",
			padRight(row.Label, labelWidth),
			padRight(truncateName(origin, originWidth), originWidth),
			row.Mean, row.StdDev, row.Count)
	}
}

// formatDuration formats a duration in a consistent, human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(100 * time.Millisecond).String()
}

// truncateName shortens a name to maxLen runes, replacing the last rune with "…" if needed.
func truncateName(name string, maxLen int) string {
	runes := []rune(name)
	if len(runes) <= maxLen {
		return name
	}
	return string(runes[:maxLen-1]) + "…"
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
