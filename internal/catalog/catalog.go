// Package catalog holds the static configuration the pipeline draws from:
// the available text-generation backends, the journalist personas used for
// evaluation, and the named presets that bundle default run parameters.
// All lookups return nil for unknown ids rather than an error.
package catalog

import "sort"

// Backend describes one remote text-generation endpoint.
type Backend struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Model       string  `json:"model" yaml:"model"`
	Provider    string  `json:"provider" yaml:"provider"`
	Tier        string  `json:"tier" yaml:"tier"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	CostFactor  float64 `json:"costFactor" yaml:"cost_factor"`
}

// Profile describes a journalist persona used to evaluate drafts.
type Profile struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	MediaType    string   `json:"mediaType" yaml:"media_type"`
	Outlet       string   `json:"outlet" yaml:"outlet"`
	FocusAreas   []string `json:"focusAreas" yaml:"focus_areas"`
	Tone         string   `json:"tone" yaml:"tone"`
	Description  string   `json:"description,omitempty" yaml:"description,omitempty"`
	SeverityBase int      `json:"severityBase" yaml:"severity_base"`
}

// Assignment pairs one backend with one persona for a single evaluation call.
type Assignment struct {
	BackendID string `json:"backendId" yaml:"backend"`
	ProfileID string `json:"profileId" yaml:"profile"`
}

// Preset is a named bundle of default run parameters.
type Preset struct {
	ID               string       `json:"id" yaml:"id"`
	Name             string       `json:"name" yaml:"name"`
	Description      string       `json:"description,omitempty" yaml:"description,omitempty"`
	Writers          []string     `json:"writers" yaml:"writers"`
	Assignments      []Assignment `json:"assignments" yaml:"assignments"`
	Editor           string       `json:"editor" yaml:"editor"`
	EstimatedMinutes int          `json:"estimatedMinutes" yaml:"estimated_minutes"`
	EstimatedCost    int          `json:"estimatedCost" yaml:"estimated_cost"`
}

// SeverityLevel describes one step of the 1-5 evaluation strictness scale.
type SeverityLevel struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Modifier    float64 `json:"modifier"`
}

// Default values for run parameter resolution.
const (
	DefaultPresetID = "standard"
	DefaultEditorID = "opus"
	DefaultSeverity = 3
	TitleModelID    = "google/gemini-3-pro-preview"
	MinSeverity     = 1
	MaxSeverity     = 5
)

// DefaultWriterIDs is the hardcoded writer fallback when neither the caller
// nor a preset supplies one.
var DefaultWriterIDs = []string{"opus", "gpt", "gemini"}

// Catalog is an immutable set of backends, profiles, and presets.
type Catalog struct {
	backends map[string]*Backend
	profiles map[string]*Profile
	presets  map[string]*Preset

	backendOrder []string
	profileOrder []string
	presetOrder  []string
}

// Backend returns the backend with the given id, or nil.
func (c *Catalog) Backend(id string) *Backend { return c.backends[id] }

// Profile returns the persona with the given id, or nil.
func (c *Catalog) Profile(id string) *Profile { return c.profiles[id] }

// Preset returns the preset with the given id, or nil.
func (c *Catalog) Preset(id string) *Preset { return c.presets[id] }

// Backends returns all backends in declaration order.
func (c *Catalog) Backends() []*Backend {
	out := make([]*Backend, 0, len(c.backendOrder))
	for _, id := range c.backendOrder {
		out = append(out, c.backends[id])
	}
	return out
}

// Profiles returns all personas in declaration order.
func (c *Catalog) Profiles() []*Profile {
	out := make([]*Profile, 0, len(c.profileOrder))
	for _, id := range c.profileOrder {
		out = append(out, c.profiles[id])
	}
	return out
}

// Presets returns all presets in declaration order.
func (c *Catalog) Presets() []*Preset {
	out := make([]*Preset, 0, len(c.presetOrder))
	for _, id := range c.presetOrder {
		out = append(out, c.presets[id])
	}
	return out
}

// ProfileIDs returns all persona ids, sorted.
func (c *Catalog) ProfileIDs() []string {
	ids := make([]string, len(c.profileOrder))
	copy(ids, c.profileOrder)
	sort.Strings(ids)
	return ids
}

// SeverityLevels maps each severity step to its display data. The modifier
// scales how harsh the reviewer prompt instructs the persona to be.
var SeverityLevels = map[int]SeverityLevel{
	1: {Name: "Lenient", Description: "Positive, encouraging review", Modifier: 0.5},
	2: {Name: "Soft", Description: "Mostly forgiving review", Modifier: 0.75},
	3: {Name: "Standard", Description: "Balanced review", Modifier: 1.0},
	4: {Name: "Strict", Description: "Demanding review", Modifier: 1.25},
	5: {Name: "Harsh", Description: "Every detail challenged", Modifier: 1.5},
}

// ClampSeverity forces lvl into the valid 1-5 range, substituting the
// default for zero or out-of-range values.
func ClampSeverity(lvl int) int {
	if lvl < MinSeverity || lvl > MaxSeverity {
		return DefaultSeverity
	}
	return lvl
}

// EstimateCost returns a rough per-run cost estimate for a resolved
// configuration. Writers and evaluations run in parallel, so time scales
// with batch size, not with the sum of calls.
func (c *Catalog) EstimateCost(writers []string, assignments []Assignment, editor string) int {
	cost := 0.0
	for _, id := range writers {
		if b := c.Backend(id); b != nil {
			cost += 15 * b.CostFactor
		}
	}
	for _, a := range assignments {
		if b := c.Backend(a.BackendID); b != nil {
			cost += 8 * b.CostFactor
		}
	}
	if b := c.Backend(editor); b != nil {
		cost += 20 * b.CostFactor
	}
	return int(cost)
}

// EstimateMinutes returns a rough wall-clock estimate for a configuration.
func (c *Catalog) EstimateMinutes(writers []string, assignments []Assignment) int {
	n := (len(writers) + len(assignments)) / 6
	if n < 1 {
		n = 1
	}
	return n
}

// Builtin returns the compiled-in catalog.
func Builtin() *Catalog {
	c := &Catalog{
		backends: map[string]*Backend{},
		profiles: map[string]*Profile{},
		presets:  map[string]*Preset{},
	}
	for i := range builtinBackends {
		b := builtinBackends[i]
		c.backends[b.ID] = &b
		c.backendOrder = append(c.backendOrder, b.ID)
	}
	for i := range builtinProfiles {
		p := builtinProfiles[i]
		c.profiles[p.ID] = &p
		c.profileOrder = append(c.profileOrder, p.ID)
	}
	for i := range builtinPresets {
		p := builtinPresets[i]
		c.presets[p.ID] = &p
		c.presetOrder = append(c.presetOrder, p.ID)
	}
	return c
}

var builtinBackends = []Backend{
	{
		ID:          "opus",
		Name:        "Claude Opus 4.5",
		Model:       "anthropic/claude-opus-4.5",
		Provider:    "Anthropic",
		Tier:        "premium",
		Description: "Highest quality prose",
		CostFactor:  3.0,
	},
	{
		ID:          "gpt",
		Name:        "GPT-5.1",
		Model:       "openai/gpt-5.1",
		Provider:    "OpenAI",
		Tier:        "premium",
		Description: "Balanced",
		CostFactor:  2.0,
	},
	{
		ID:          "gemini",
		Name:        "Gemini Pro",
		Model:       "google/gemini-3-pro-preview",
		Provider:    "Google",
		Tier:        "standard",
		Description: "Concise",
		CostFactor:  1.0,
	},
	{
		ID:          "grok",
		Name:        "Grok 4.1",
		Model:       "x-ai/grok-4.1-fast",
		Provider:    "xAI",
		Tier:        "premium",
		Description: "Contrarian angle",
		CostFactor:  2.0,
	},
}

var builtinProfiles = []Profile{
	{
		ID:           "nikkei",
		Name:         "Business daily reporter",
		MediaType:    "financial press",
		Outlet:       "Nikkei",
		FocusAreas:   []string{"corporate value", "share price impact", "strategy", "accuracy of figures"},
		Tone:         "objective, analytical",
		Description:  "Covers the corporate desk of a major business daily. Weighs enterprise value and market impact above all.",
		SeverityBase: 4,
	},
	{
		ID:           "lifestyle",
		Name:         "National paper lifestyle desk",
		MediaType:    "national daily",
		Outlet:       "Asahi / Mainichi",
		FocusAreas:   []string{"consumer perspective", "everyday impact", "clarity", "social relevance"},
		Tone:         "approachable, empathetic",
		Description:  "Lifestyle desk reporter at a national daily, reading with the general public's eyes.",
		SeverityBase: 3,
	},
	{
		ID:           "web",
		Name:         "Tech web reporter",
		MediaType:    "online media",
		Outlet:       "ITmedia / Impress Watch",
		FocusAreas:   []string{"technical novelty", "industry trends", "readability", "search visibility"},
		Tone:         "casual, engaging",
		Description:  "Writes for high-volume tech news sites. Cares about technical accuracy and whether the story trends.",
		SeverityBase: 3,
	},
	{
		ID:           "trade",
		Name:         "Trade journal reporter",
		MediaType:    "trade press",
		Outlet:       "Nikkan Kogyo / Dempa Shimbun",
		FocusAreas:   []string{"technical depth", "sector outlook", "terminology accuracy", "industry impact"},
		Tone:         "specialist, technical",
		Description:  "Industry specialist who digs into technical claims and their consequences for the sector.",
		SeverityBase: 5,
	},
	{
		ID:           "tv",
		Name:         "Business TV reporter",
		MediaType:    "television",
		Outlet:       "WBS / NHK",
		FocusAreas:   []string{"viewer interest", "visual potential", "catchiness", "social impact"},
		Tone:         "plain-spoken, impact-driven",
		Description:  "Prepares segments for prime-time business television. Needs a story a broad audience follows in ninety seconds.",
		SeverityBase: 2,
	},
}

var builtinPresets = []Preset{
	{
		ID:          "simple",
		Name:        "Simple",
		Description: "3 writers, 5 evaluations. Quick look at the results.",
		Writers:     []string{"opus", "gpt", "gemini"},
		Assignments: []Assignment{
			{BackendID: "opus", ProfileID: "nikkei"},
			{BackendID: "gemini", ProfileID: "lifestyle"},
			{BackendID: "gpt", ProfileID: "web"},
			{BackendID: "opus", ProfileID: "trade"},
			{BackendID: "gemini", ProfileID: "tv"},
		},
		Editor:           "gemini",
		EstimatedMinutes: 1,
		EstimatedCost:    60,
	},
	{
		ID:          "standard",
		Name:        "Standard",
		Description: "3 writers, 10 evaluations. The balanced default.",
		Writers:     []string{"opus", "gpt", "gemini"},
		Assignments: []Assignment{
			{BackendID: "opus", ProfileID: "nikkei"},
			{BackendID: "gpt", ProfileID: "nikkei"},
			{BackendID: "gpt", ProfileID: "lifestyle"},
			{BackendID: "gemini", ProfileID: "lifestyle"},
			{BackendID: "gpt", ProfileID: "web"},
			{BackendID: "grok", ProfileID: "web"},
			{BackendID: "opus", ProfileID: "trade"},
			{BackendID: "gpt", ProfileID: "trade"},
			{BackendID: "gemini", ProfileID: "tv"},
			{BackendID: "grok", ProfileID: "tv"},
		},
		Editor:           "opus",
		EstimatedMinutes: 2,
		EstimatedCost:    100,
	},
	{
		ID:               "full",
		Name:             "Full",
		Description:      "4 writers, 20 evaluations. Every backend crossed with every persona.",
		Writers:          []string{"opus", "gpt", "gemini", "grok"},
		Assignments:      fullMatrix(),
		Editor:           "opus",
		EstimatedMinutes: 5,
		EstimatedCost:    200,
	},
}

func fullMatrix() []Assignment {
	backends := []string{"opus", "gpt", "gemini", "grok"}
	profiles := []string{"nikkei", "lifestyle", "web", "trade", "tv"}
	var out []Assignment
	for _, b := range backends {
		for _, p := range profiles {
			out = append(out, Assignment{BackendID: b, ProfileID: p})
		}
	}
	return out
}
