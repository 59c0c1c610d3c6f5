package webapi

import (
	"github.com/unbobounbobo/press-council/internal/catalog"
	"github.com/unbobounbobo/press-council/internal/council"
)

// Version is the single release identifier, overridable at build time
// with -ldflags. Both /api/health and the CLI --version report it.
var Version = "0.3.0"

// ConfigResponse exposes the catalog to the frontend: available backends,
// evaluation personas, presets, and the severity scale.
type ConfigResponse struct {
	Backends       []*catalog.Backend            `json:"backends"`
	Profiles       []*catalog.Profile            `json:"profiles"`
	Presets        []*catalog.Preset             `json:"presets"`
	SeverityLevels map[int]catalog.SeverityLevel `json:"severityLevels"`
	Defaults       DefaultsInfo                  `json:"defaults"`
}

// DefaultsInfo names the hardcoded fallbacks for each run parameter.
type DefaultsInfo struct {
	Preset   string   `json:"preset"`
	Writers  []string `json:"writers"`
	Editor   string   `json:"editor"`
	Severity int      `json:"severity"`
}

// RunResponse is the full bundle returned by a finished run. The POST body
// for a run is a plain council.Request: content, preset, writers,
// assignments, editor, severity.
type RunResponse struct {
	ConversationID string `json:"conversationId"`
	Title          string `json:"title"`
	council.Result
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
