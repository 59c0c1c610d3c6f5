package council

// EventType identifies a progress event emitted at a stage boundary.
type EventType string

const (
	EventRunConfigured        EventType = "run_configured"
	EventDraftingStarted      EventType = "drafting_started"
	EventDraftingComplete     EventType = "drafting_complete"
	EventEvaluatingStarted    EventType = "evaluating_started"
	EventEvaluatingComplete   EventType = "evaluating_complete"
	EventSynthesizingStarted  EventType = "synthesizing_started"
	EventSynthesizingComplete EventType = "synthesizing_complete"
	EventRunComplete          EventType = "run_complete"
	EventRunFailed            EventType = "run_failed"
)

// Event is one progress update. Events are purely observational: emitting
// them never alters control flow, and a run with no listeners behaves
// identically.
type Event struct {
	Type EventType `json:"type"`

	// Stage payloads, populated on the matching completion events.
	Drafts      []Draft          `json:"drafts,omitempty"`
	Evaluations []Evaluation     `json:"evaluations,omitempty"`
	Synthesis   *SynthesisResult `json:"synthesis,omitempty"`
	Metadata    *Metadata        `json:"metadata,omitempty"`

	// Message carries the failure explanation on run_failed.
	Message string `json:"message,omitempty"`

	// Details holds small scalar facts (counts, ids) for start events.
	Details map[string]any `json:"details,omitempty"`
}

// Listener receives progress events. Listener calls are made from the
// orchestrator goroutine, in order, one stage boundary at a time.
type Listener func(Event)
