package session

import "time"

// EventType identifies the kind of run log event.
type EventType string

const (
	EventRunStart      EventType = "run_start"
	EventRunEnd        EventType = "run_complete"
	EventStageStart    EventType = "stage_start"
	EventStageComplete EventType = "stage_complete"
	EventBackendResult EventType = "backend_result"
	EventError         EventType = "error"
)

// Event is a single timestamped entry in a run log.
type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	Type      EventType      `json:"type"`
	Data      map[string]any `json:"data,omitempty"`
}

// NewEvent creates an event with the current timestamp.
func NewEvent(t EventType, data map[string]any) Event {
	return Event{
		Timestamp: time.Now().UTC(),
		Type:      t,
		Data:      data,
	}
}

// RunStartData returns event data for a run start.
func RunStartData(presetID string, writers []string, editor string, severity int) map[string]any {
	return map[string]any{
		"preset":   presetID,
		"writers":  writers,
		"editor":   editor,
		"severity": severity,
	}
}

// RunCompleteData returns event data for a run end.
func RunCompleteData(state string, drafts, evaluations int, durationMs int64) map[string]any {
	return map[string]any{
		"state":       state,
		"drafts":      drafts,
		"evaluations": evaluations,
		"duration_ms": durationMs,
	}
}

// StageStartData returns event data for the start of a pipeline stage.
func StageStartData(stage string) map[string]any {
	return map[string]any{
		"stage": stage,
	}
}

// StageCompleteData returns event data for the end of a pipeline stage.
func StageCompleteData(stage string, produced int, durationMs int64) map[string]any {
	return map[string]any{
		"stage":       stage,
		"produced":    produced,
		"duration_ms": durationMs,
	}
}

// BackendResultData returns event data for a single backend's contribution.
func BackendResultData(backendID, role string, ok bool) map[string]any {
	return map[string]any{
		"backend": backendID,
		"role":    role,
		"ok":      ok,
	}
}

// ErrorData returns event data for an error.
func ErrorData(message string, details map[string]any) map[string]any {
	d := map[string]any{
		"message": message,
	}
	for k, v := range details {
		d[k] = v
	}
	return d
}
