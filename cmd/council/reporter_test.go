package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/unbobounbobo/press-council/internal/catalog"
	"github.com/unbobounbobo/press-council/internal/council"
	"github.com/unbobounbobo/press-council/internal/ranking"
)

func sampleResult() *council.Result {
	return &council.Result{
		State: council.StateComplete,
		Drafts: []council.Draft{
			{BackendID: "opus", BackendName: "Claude Opus", Content: "Draft one."},
			{BackendID: "gpt", BackendName: "GPT", Content: "Draft two."},
		},
		Evaluations: []council.Evaluation{
			{BackendID: "gemini", BackendName: "Gemini", ProfileID: "nikkei", ProfileName: "Business Daily Reporter",
				Verdict: "Solid numbers.\n\nFINAL RANKING:\nDraft-A\nDraft-B", Ranking: []string{"Draft-A", "Draft-B"}},
		},
		Synthesis: council.SynthesisResult{BackendID: "opus", BackendName: "Claude Opus", Content: "Final release text."},
		Metadata: council.Metadata{
			PresetID: "standard",
			Severity: 3,
			Writers:  []string{"opus", "gpt"},
			Editor:   "opus",
			Aggregate: []ranking.Row{
				{Label: "Draft-A", OriginID: "opus", Mean: 1.0, Count: 1},
				{Label: "Draft-B", OriginID: "gpt", Mean: 2.0, Count: 1},
			},
		},
	}
}

func TestReporterEvents(t *testing.T) {
	var buf bytes.Buffer
	rep := newReporter(&buf, catalog.Builtin(), false)

	meta := council.Metadata{PresetID: "standard", Severity: 3, Writers: []string{"opus"}, Editor: "opus"}
	rep.handleEvent(council.Event{Type: council.EventRunConfigured, Metadata: &meta})
	rep.handleEvent(council.Event{Type: council.EventDraftingStarted})
	rep.handleEvent(council.Event{Type: council.EventDraftingComplete, Drafts: sampleResult().Drafts})
	rep.handleEvent(council.Event{Type: council.EventEvaluatingStarted})
	rep.handleEvent(council.Event{Type: council.EventEvaluatingComplete, Evaluations: sampleResult().Evaluations})
	rep.handleEvent(council.Event{Type: council.EventSynthesizingStarted})
	syn := sampleResult().Synthesis
	rep.handleEvent(council.Event{Type: council.EventSynthesizingComplete, Synthesis: &syn})

	out := buf.String()
	assert.Contains(t, out, "Preset: standard")
	assert.Contains(t, out, "▶ Drafting...")
	assert.Contains(t, out, "2 draft(s) produced")
	assert.Contains(t, out, "Business Daily Reporter")
	assert.Contains(t, out, "▶ Synthesizing...")
}

func TestReporterFailedEvent(t *testing.T) {
	var buf bytes.Buffer
	rep := newReporter(&buf, catalog.Builtin(), false)

	rep.handleEvent(council.Event{Type: council.EventRunFailed, Message: "no drafts"})

	assert.Contains(t, buf.String(), "✗ no drafts")
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	rep := newReporter(&buf, catalog.Builtin(), false)

	rep.printSummary(sampleResult(), 1500*time.Millisecond)

	out := buf.String()
	assert.Contains(t, out, "Ranking (lower is better):")
	assert.Contains(t, out, "Draft-A")
	// Origin ids resolve to catalog display names.
	assert.Contains(t, out, "Claude Opus")
	assert.Contains(t, out, "Final release text.")
	assert.Contains(t, out, "Done in 1.5s")
	// Not verbose: verdict bodies stay out of the summary.
	assert.NotContains(t, out, "Solid numbers.")
}

func TestPrintSummaryVerbose(t *testing.T) {
	var buf bytes.Buffer
	rep := newReporter(&buf, catalog.Builtin(), true)

	rep.printSummary(sampleResult(), time.Second)

	assert.Contains(t, buf.String(), "Solid numbers.")
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "500ms", formatDuration(500*time.Millisecond))
	assert.Equal(t, "2.5s", formatDuration(2500*time.Millisecond))
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "short", truncateName("short", 10))
	assert.Equal(t, "very long…", truncateName("very long name", 10))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab  ", padRight("ab", 4))
	assert.Equal(t, "abcd", padRight("abcd", 2))
}
