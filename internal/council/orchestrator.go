package council

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/unbobounbobo/press-council/internal/catalog"
	"github.com/unbobounbobo/press-council/internal/dispatch"
	"github.com/unbobounbobo/press-council/internal/openrouter"
	"github.com/unbobounbobo/press-council/internal/ranking"
)

// Council sequences draft generation, evaluation, and synthesis over a
// catalog of backends. Construct one per process; Run may be called
// concurrently, each call owning its run's state.
type Council struct {
	cat    *catalog.Catalog
	caller Caller
	logger *slog.Logger

	mu        sync.Mutex
	listeners []Listener
}

// Option configures a Council.
type Option func(*Council)

// WithLogger overrides the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Council) { c.logger = l }
}

// New creates a Council over the given catalog and remote caller.
func New(cat *catalog.Catalog, caller Caller, opts ...Option) *Council {
	c := &Council{cat: cat, caller: caller, logger: slog.Default()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// OnProgress registers a progress listener.
func (c *Council) OnProgress(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

func (c *Council) notify(ev Event) {
	c.mu.Lock()
	listeners := make([]Listener, len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()

	for _, l := range listeners {
		l(ev)
	}
}

// Resolve computes the effective run parameters: explicit caller value,
// else the named preset's default, else the hardcoded fallback. An unknown
// preset id behaves as if no preset were given.
func (c *Council) Resolve(req Request) Metadata {
	presetID := req.PresetID
	if presetID == "" {
		presetID = catalog.DefaultPresetID
	}
	preset := c.cat.Preset(presetID)
	if preset == nil {
		// An unknown preset behaves as if none were given: every field
		// falls through to its hardcoded fallback.
		c.logger.Debug("unknown preset, using fallbacks", "preset", presetID)
	}

	meta := Metadata{
		PresetID: presetID,
		Severity: catalog.ClampSeverity(req.Severity),
	}

	meta.Writers = req.Writers
	if len(meta.Writers) == 0 && preset != nil {
		meta.Writers = preset.Writers
	}
	if len(meta.Writers) == 0 {
		meta.Writers = catalog.DefaultWriterIDs
	}

	meta.Assignments = req.Assignments
	if len(meta.Assignments) == 0 && preset != nil {
		meta.Assignments = preset.Assignments
	}

	meta.Editor = req.Editor
	if meta.Editor == "" && preset != nil {
		meta.Editor = preset.Editor
	}
	if meta.Editor == "" {
		meta.Editor = catalog.DefaultEditorID
	}

	return meta
}

// Run executes one full council. The returned Result is always non-nil;
// the error is ErrNoDrafts when every writer call failed and the run ended
// in StateFailed.
func (c *Council) Run(ctx context.Context, req Request) (*Result, error) {
	meta := c.Resolve(req)

	c.logger.Info("run configured",
		"preset", meta.PresetID, "writers", meta.Writers,
		"assignments", len(meta.Assignments), "editor", meta.Editor,
		"severity", meta.Severity)

	configured := meta
	c.notify(Event{Type: EventRunConfigured, Metadata: &configured})

	// Stage 1: drafts.
	c.notify(Event{Type: EventDraftingStarted, Details: map[string]any{
		"writers": meta.Writers,
	}})

	drafts := c.generateDrafts(ctx, meta.Writers, req.Input)
	if len(drafts) == 0 {
		result := c.failedResult(meta)
		c.notify(Event{Type: EventRunFailed, Message: result.Synthesis.Content, Metadata: &result.Metadata})
		return result, fmt.Errorf("run failed: %w", ErrNoDrafts)
	}
	c.notify(Event{Type: EventDraftingComplete, Drafts: drafts})

	// Anonymize only once drafts exist; the mapping stays private to the
	// run until it is revealed in the aggregation output.
	origins := make([]string, len(drafts))
	for i, d := range drafts {
		origins[i] = d.BackendID
	}
	labels := ranking.AssignLabels(origins)

	// Stage 2: evaluations.
	assignments := c.validAssignments(meta.Assignments)
	c.notify(Event{Type: EventEvaluatingStarted, Details: map[string]any{
		"evaluations": len(assignments),
	}})

	evaluations := c.evaluate(ctx, assignments, drafts, labels, meta.Severity)

	ranked := make([]ranking.Ranked, len(evaluations))
	for i, ev := range evaluations {
		ranked[i] = ev.ranked()
	}
	meta.LabelOrigins = labels.Origins()
	meta.Aggregate = ranking.Aggregate(ranked, labels)
	meta.ProfileBreakdown = ranking.ProfileBreakdown(ranked, labels)
	meta.CrossTable = ranking.CrossTable(ranked, labels)

	evalMeta := meta
	c.notify(Event{Type: EventEvaluatingComplete, Evaluations: evaluations, Metadata: &evalMeta})

	// Stage 3: synthesis. Always attempted, even over an empty evaluation
	// set; a hard failure degrades the result instead of aborting the run.
	c.notify(Event{Type: EventSynthesizingStarted, Details: map[string]any{
		"editor": meta.Editor,
	}})

	synthesis := c.synthesize(ctx, meta.Editor, req.Input, drafts, evaluations, meta.Aggregate, labels)
	c.notify(Event{Type: EventSynthesizingComplete, Synthesis: &synthesis})

	result := &Result{
		State:       StateComplete,
		Drafts:      drafts,
		Evaluations: evaluations,
		Synthesis:   synthesis,
		Metadata:    meta,
	}
	c.notify(Event{Type: EventRunComplete, Metadata: &result.Metadata})
	return result, nil
}

// generateDrafts fans one identical writing prompt out to every known
// writer backend. Unknown ids are dropped silently; writers whose call
// came back absent are excluded from the result.
func (c *Council) generateDrafts(ctx context.Context, writerIDs []string, input string) []Draft {
	var writers []*catalog.Backend
	for _, id := range writerIDs {
		b := c.cat.Backend(id)
		if b == nil {
			c.logger.Debug("dropping unknown writer", "backend", id)
			continue
		}
		writers = append(writers, b)
	}
	if len(writers) == 0 {
		return nil
	}

	msgs := []openrouter.Message{
		openrouter.System(writerSystemPrompt),
		openrouter.User(writerUserPrompt(input)),
	}

	units := make([]dispatch.Unit[openrouter.Result], len(writers))
	for i, w := range writers {
		model := w.Model
		units[i] = func(ctx context.Context) *openrouter.Result {
			return c.caller.TryComplete(ctx, model, msgs, openrouter.CallOptions{Timeout: DraftTimeout})
		}
	}
	results := dispatch.All(ctx, units)

	var drafts []Draft
	for i, res := range results {
		if res == nil {
			c.logger.Warn("writer produced no draft", "backend", writers[i].ID)
			continue
		}
		drafts = append(drafts, Draft{
			BackendID:   writers[i].ID,
			BackendName: writers[i].Name,
			Model:       writers[i].Model,
			Content:     res.Content,
		})
	}
	return drafts
}

// validAssignments drops pairs referencing unknown backend or profile ids.
func (c *Council) validAssignments(assignments []catalog.Assignment) []catalog.Assignment {
	var valid []catalog.Assignment
	for _, a := range assignments {
		if c.cat.Backend(a.BackendID) == nil || c.cat.Profile(a.ProfileID) == nil {
			c.logger.Debug("skipping invalid assignment", "backend", a.BackendID, "profile", a.ProfileID)
			continue
		}
		valid = append(valid, a)
	}
	return valid
}

// evaluate issues every evaluation call concurrently and parses each
// non-absent verdict into an Evaluation record.
func (c *Council) evaluate(ctx context.Context, assignments []catalog.Assignment, drafts []Draft, labels *ranking.LabelMap, severity int) []Evaluation {
	units := make([]dispatch.Unit[openrouter.Result], len(assignments))
	for i, a := range assignments {
		backend := c.cat.Backend(a.BackendID)
		profile := c.cat.Profile(a.ProfileID)
		msgs := []openrouter.Message{
			openrouter.System(reviewerSystemPrompt(profile, severity)),
			openrouter.User(reviewerUserPrompt(drafts, labels)),
		}
		model := backend.Model
		units[i] = func(ctx context.Context) *openrouter.Result {
			return c.caller.TryComplete(ctx, model, msgs, openrouter.CallOptions{Timeout: EvalTimeout})
		}
	}
	results := dispatch.All(ctx, units)

	var evaluations []Evaluation
	for i, res := range results {
		if res == nil {
			c.logger.Warn("evaluation absent",
				"backend", assignments[i].BackendID, "profile", assignments[i].ProfileID)
			continue
		}
		backend := c.cat.Backend(assignments[i].BackendID)
		profile := c.cat.Profile(assignments[i].ProfileID)
		evaluations = append(evaluations, Evaluation{
			BackendID:   backend.ID,
			BackendName: backend.Name,
			Model:       backend.Model,
			ProfileID:   profile.ID,
			ProfileName: profile.Name,
			Verdict:     res.Content,
			Ranking:     ranking.ExtractRanking(res.Content),
		})
	}
	return evaluations
}

// synthesize runs the editor in hard mode. A typed failure degrades the
// result: the error flag is set, the quota flag propagated, and the
// content carries the user-facing message.
func (c *Council) synthesize(ctx context.Context, editorID, input string, drafts []Draft, evals []Evaluation, rows []ranking.Row, labels *ranking.LabelMap) SynthesisResult {
	editor := c.cat.Backend(editorID)
	if editor == nil {
		c.logger.Warn("unknown editor, falling back to default", "editor", editorID)
		editor = c.cat.Backend(catalog.DefaultEditorID)
	}
	if editor == nil {
		return SynthesisResult{
			BackendID: editorID,
			Content:   "(No usable editor backend is configured.)",
			Error:     true,
		}
	}

	synthesis := SynthesisResult{
		BackendID:   editor.ID,
		BackendName: editor.Name,
		Model:       editor.Model,
	}

	msgs := []openrouter.Message{
		openrouter.System(editorSystemPrompt),
		openrouter.User(editorUserPrompt(input, drafts, evals, rows, labels)),
	}

	res, err := c.caller.Complete(ctx, editor.Model, msgs, openrouter.CallOptions{Timeout: SynthesisTimeout})
	if err != nil {
		var apiErr *openrouter.APIError
		if errors.As(err, &apiErr) {
			c.logger.Error("synthesis failed", "editor", editor.ID, "kind", apiErr.Kind, "code", apiErr.Code)
			synthesis.Content = fmt.Sprintf("(%s)", apiErr.Message)
			synthesis.Error = true
			synthesis.ErrorCode = apiErr.Code
			synthesis.Quota = apiErr.Quota
			return synthesis
		}
		c.logger.Error("synthesis failed", "editor", editor.ID, "error", err)
		synthesis.Content = "(The editor failed to produce a final release.)"
		synthesis.Error = true
		return synthesis
	}

	synthesis.Content = res.Content
	return synthesis
}

// failedResult builds the degraded bundle for a run that produced zero
// drafts. The synthesizer backend is never called.
func (c *Council) failedResult(meta Metadata) *Result {
	synthesis := SynthesisResult{
		BackendID: meta.Editor,
		Content:   "(Draft generation failed: no writer backend returned a draft.)",
		Error:     true,
	}
	if editor := c.cat.Backend(meta.Editor); editor != nil {
		synthesis.BackendName = editor.Name
		synthesis.Model = editor.Model
	}
	return &Result{
		State:       StateFailed,
		Drafts:      []Draft{},
		Evaluations: []Evaluation{},
		Synthesis:   synthesis,
		Metadata:    meta,
	}
}
