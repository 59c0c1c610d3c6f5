package webapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/unbobounbobo/press-council/internal/council"
)

// HandleRunStream executes a full pipeline run and streams stage-boundary
// progress events to the client as server-sent events. The event name is
// the pipeline event type; the final "complete" event carries the same
// bundle HandleRun returns.
func (h *Handlers) HandleRunStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	req, conv, ok := h.prepareRun(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// The orchestrator invokes listeners from its own goroutine; events go
	// through a channel so only this handler writes to the response.
	events := make(chan council.Event, 16)
	cn := h.council()
	cn.OnProgress(func(ev council.Event) {
		select {
		case events <- ev:
		case <-r.Context().Done():
		}
	})

	type outcome struct {
		result *council.Result
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := cn.Run(r.Context(), req)
		done <- outcome{result: result, err: err}
	}()

	for {
		select {
		case <-r.Context().Done():
			// Client went away; the run's context is cancelled with it.
			<-done
			return

		case ev := <-events:
			writeSSE(w, flusher, string(ev.Type), ev)

		case out := <-done:
			// Flush events buffered before the run finished.
			for {
				select {
				case ev := <-events:
					writeSSE(w, flusher, string(ev.Type), ev)
					continue
				default:
				}
				break
			}

			if out.err != nil && !errors.Is(out.err, council.ErrNoDrafts) {
				writeSSE(w, flusher, "error", ErrorResponse{Error: out.err.Error(), Code: http.StatusInternalServerError})
				return
			}

			resp := h.finishRun(r, cn, conv, req.Input, out.result)
			if resp.Title != conv.Title {
				writeSSE(w, flusher, "title_complete", map[string]string{"title": resp.Title})
			}
			writeSSE(w, flusher, "complete", resp)
			return
		}
	}
}

// writeSSE writes one named server-sent event with a JSON payload.
//
//nolint:errcheck // client disconnects surface via the request context
func writeSSE(w http.ResponseWriter, flusher http.Flusher, name string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
	flusher.Flush()
}
