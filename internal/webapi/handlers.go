// Package webapi exposes the press-release pipeline over HTTP: a catalog
// endpoint for frontends, conversation CRUD, and synchronous plus streaming
// run endpoints.
package webapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/unbobounbobo/press-council/internal/catalog"
	"github.com/unbobounbobo/press-council/internal/council"
	"github.com/unbobounbobo/press-council/internal/store"
)

// Handlers holds the HTTP handler methods for the web API.
type Handlers struct {
	cat    *catalog.Catalog
	caller council.Caller
	convs  ConversationStore
	logger *slog.Logger
}

// NewHandlers creates a new Handlers over the given catalog, remote caller,
// and conversation store.
func NewHandlers(cat *catalog.Catalog, caller council.Caller, convs ConversationStore, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{cat: cat, caller: caller, convs: convs, logger: logger}
}

// council constructs a pipeline instance for one request.
func (h *Handlers) council() *council.Council {
	return council.New(h.cat, h.caller, council.WithLogger(h.logger))
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// HandleConfig returns the catalog: backends, personas, presets, severity
// scale, and the hardcoded defaults.
func (h *Handlers) HandleConfig(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ConfigResponse{
		Backends:       h.cat.Backends(),
		Profiles:       h.cat.Profiles(),
		Presets:        h.cat.Presets(),
		SeverityLevels: catalog.SeverityLevels,
		Defaults: DefaultsInfo{
			Preset:   catalog.DefaultPresetID,
			Writers:  catalog.DefaultWriterIDs,
			Editor:   catalog.DefaultEditorID,
			Severity: catalog.DefaultSeverity,
		},
	})
}

// HandleConversations returns metadata for every stored conversation,
// newest first.
func (h *Handlers) HandleConversations(w http.ResponseWriter, _ *http.Request) {
	list, err := h.convs.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if list == nil {
		list = []store.Metadata{}
	}
	writeJSON(w, http.StatusOK, list)
}

// HandleCreateConversation starts a new empty conversation.
func (h *Handlers) HandleCreateConversation(w http.ResponseWriter, _ *http.Request) {
	conv, err := h.convs.Create()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, conv)
}

// HandleConversationDetail returns the full stored conversation.
func (h *Handlers) HandleConversationDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "conversation id is required")
		return
	}

	conv, err := h.convs.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "conversation not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, conv)
}

// HandleDeleteConversation removes a conversation.
func (h *Handlers) HandleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "conversation id is required")
		return
	}

	if err := h.convs.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "conversation not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRun executes a full pipeline run synchronously and returns the
// bundle. A run that degraded or failed still returns 200 with the state
// and explanation embedded; only malformed requests and store failures map
// to error statuses.
func (h *Handlers) HandleRun(w http.ResponseWriter, r *http.Request) {
	req, conv, ok := h.prepareRun(w, r)
	if !ok {
		return
	}

	cn := h.council()
	result, err := cn.Run(r.Context(), req)
	if err != nil && !errors.Is(err, council.ErrNoDrafts) {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := h.finishRun(r, cn, conv, req.Input, result)
	writeJSON(w, http.StatusOK, resp)
}

// prepareRun decodes and validates the request body, looks up the target
// conversation from the path, and records the user turn. On failure it
// writes the error response and returns ok=false.
func (h *Handlers) prepareRun(w http.ResponseWriter, r *http.Request) (council.Request, *store.Conversation, bool) {
	var req council.Request

	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "conversation id is required")
		return req, nil, false
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return req, nil, false
	}
	req.Input = strings.TrimSpace(req.Input)
	if req.Input == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return req, nil, false
	}

	conv, err := h.convs.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "conversation not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return req, nil, false
	}

	if err := h.convs.AppendUserTurn(conv.ID, req.Input); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return req, nil, false
	}
	return req, conv, true
}

// finishRun persists the assistant turn and, on the conversation's first
// run, generates and stores a title. Persistence failures are logged, not
// surfaced: the caller already has the result.
func (h *Handlers) finishRun(r *http.Request, cn *council.Council, conv *store.Conversation, input string, result *council.Result) RunResponse {
	if err := h.convs.AppendAssistantTurn(conv.ID, result.Drafts, result.Evaluations, result.Synthesis); err != nil {
		h.logger.Error("persisting assistant turn", "conversation", conv.ID, "error", err)
	}

	title := conv.Title
	if len(conv.Turns) == 0 && result.State == council.StateComplete {
		title = cn.GenerateTitle(r.Context(), input)
		if err := h.convs.SetTitle(conv.ID, title); err != nil {
			h.logger.Error("persisting title", "conversation", conv.ID, "error", err)
		}
	}

	return RunResponse{
		ConversationID: conv.ID,
		Title:          title,
		Result:         *result,
	}
}

// RegisterRoutes registers all web API routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, h *Handlers) {
	mux.HandleFunc("GET /api/health", h.HandleHealth)
	mux.HandleFunc("GET /api/config", h.HandleConfig)
	mux.HandleFunc("GET /api/conversations", h.HandleConversations)
	mux.HandleFunc("POST /api/conversations", h.HandleCreateConversation)
	mux.HandleFunc("GET /api/conversations/{id}", h.HandleConversationDetail)
	mux.HandleFunc("DELETE /api/conversations/{id}", h.HandleDeleteConversation)
	mux.HandleFunc("GET /api/conversations/{id}/release.html", h.HandleReleaseHTML)
	mux.HandleFunc("POST /api/conversations/{id}/press-release", h.HandleRun)
	mux.HandleFunc("POST /api/conversations/{id}/press-release/stream", h.HandleRunStream)
}

// CORSMiddleware wraps a handler with CORS headers.
// If allowedOrigins is empty, no CORS header is set (same-origin only).
// Otherwise, the request Origin is checked against the allowed list.
func CORSMiddleware(next http.Handler, allowedOrigins ...string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if len(allowedOrigins) > 0 && origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}
