// Package council runs the three-stage press-release pipeline: several
// writer backends draft independently, journalist personas rank the
// anonymized drafts, and a single editor backend synthesizes the final
// release from the drafts and the aggregated rankings.
package council

import (
	"context"
	"errors"
	"time"

	"github.com/unbobounbobo/press-council/internal/catalog"
	"github.com/unbobounbobo/press-council/internal/openrouter"
	"github.com/unbobounbobo/press-council/internal/ranking"
)

// Stage timeouts. Synthesis gets a longer budget because its prompt embeds
// every draft and every evaluation.
const (
	DraftTimeout     = 120 * time.Second
	EvalTimeout      = 120 * time.Second
	SynthesisTimeout = 180 * time.Second
	TitleTimeout     = 30 * time.Second
)

// ErrNoDrafts marks a run where every writer call failed. The run cannot
// proceed past drafting; it is reported, not retried.
var ErrNoDrafts = errors.New("no drafts produced")

//go:generate mockgen -source=types.go -destination=mock_caller_test.go -package=council

// Caller is the remote-call dependency of the pipeline. *openrouter.Client
// implements it; tests substitute a mock.
type Caller interface {
	// Complete is the hard-mode call: failure returns an *openrouter.APIError.
	Complete(ctx context.Context, model string, msgs []openrouter.Message, opts openrouter.CallOptions) (*openrouter.Result, error)
	// TryComplete is the soft-mode call: failure returns nil.
	TryComplete(ctx context.Context, model string, msgs []openrouter.Message, opts openrouter.CallOptions) *openrouter.Result
}

// Request carries the caller-supplied run parameters. Every optional field
// falls back to the preset's default, then to a hardcoded constant.
type Request struct {
	Input       string               `json:"content"`
	PresetID    string               `json:"preset,omitempty"`
	Writers     []string             `json:"writers,omitempty"`
	Assignments []catalog.Assignment `json:"assignments,omitempty"`
	Editor      string               `json:"editor,omitempty"`
	Severity    int                  `json:"severity,omitempty"`
}

// Draft is one writer backend's candidate press release. Never mutated
// after creation.
type Draft struct {
	BackendID   string `json:"backendId"`
	BackendName string `json:"backendName"`
	Model       string `json:"model"`
	Content     string `json:"content"`
}

// Evaluation is one (backend, persona) assignment's verdict over the
// anonymized drafts. Ranking may be empty when no ranking could be
// extracted from the verdict text.
type Evaluation struct {
	BackendID   string   `json:"backendId"`
	BackendName string   `json:"backendName"`
	Model       string   `json:"model"`
	ProfileID   string   `json:"profileId"`
	ProfileName string   `json:"profileName"`
	Verdict     string   `json:"verdict"`
	Ranking     []string `json:"ranking"`
}

// ranked converts the evaluation into the aggregation engine's input view.
func (e Evaluation) ranked() ranking.Ranked {
	return ranking.Ranked{BackendID: e.BackendID, ProfileID: e.ProfileID, Labels: e.Ranking}
}

// SynthesisResult is the editor's final output. When synthesis degraded,
// Error is set, Content carries a user-facing message, and Quota flags
// credit exhaustion.
type SynthesisResult struct {
	BackendID   string `json:"backendId"`
	BackendName string `json:"backendName"`
	Model       string `json:"model"`
	Content     string `json:"content"`
	Error       bool   `json:"error,omitempty"`
	ErrorCode   int    `json:"errorCode,omitempty"`
	Quota       bool   `json:"quota,omitempty"`
}

// Metadata bundles the resolved effective parameters and the derived
// aggregation views of a finished run.
type Metadata struct {
	PresetID         string                   `json:"preset"`
	Severity         int                      `json:"severity"`
	Writers          []string                 `json:"writers"`
	Assignments      []catalog.Assignment     `json:"assignments"`
	Editor           string                   `json:"editor"`
	LabelOrigins     map[string]string        `json:"labelOrigins,omitempty"`
	Aggregate        []ranking.Row            `json:"aggregateRankings,omitempty"`
	ProfileBreakdown map[string][]ranking.Row `json:"profileBreakdown,omitempty"`
	CrossTable       *ranking.Table           `json:"crossTable,omitempty"`
}

// State names the orchestrator's terminal outcome.
type State string

const (
	StateComplete State = "complete"
	StateFailed   State = "failed"
)

// Result is the Complete/Failed bundle returned by a run. A Failed run
// still carries a degraded SynthesisResult with an explanatory message.
type Result struct {
	State       State           `json:"state"`
	Drafts      []Draft         `json:"drafts"`
	Evaluations []Evaluation    `json:"evaluations"`
	Synthesis   SynthesisResult `json:"synthesis"`
	Metadata    Metadata        `json:"metadata"`
}
