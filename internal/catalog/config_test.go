package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsBuiltin(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Len(t, c.Backends(), 4)
	assert.Len(t, c.Presets(), 3)
}

func TestLoadOverlayFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "council.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
backends:
  - id: local
    name: Local model
    model: local/test-model
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, c.Backend("local"))
	assert.Len(t, c.Backends(), 5)
}

func TestLoadBytesEmptyDocument(t *testing.T) {
	c, err := LoadBytes([]byte("# just a comment\n"))
	require.NoError(t, err)
	assert.Len(t, c.Backends(), 4)
}

func TestLoadBytesAppendsNewBackend(t *testing.T) {
	c, err := LoadBytes([]byte(`
backends:
  - id: mistral
    name: Mistral Large
    model: mistralai/mistral-large
    provider: Mistral
    tier: fast
    cost_factor: 0.5
`))
	require.NoError(t, err)

	b := c.Backend("mistral")
	require.NotNil(t, b)
	assert.Equal(t, "mistralai/mistral-large", b.Model)
	assert.Equal(t, "fast", b.Tier)
	assert.Equal(t, 0.5, b.CostFactor)

	// Appended after the builtins, in declaration order.
	all := c.Backends()
	require.Len(t, all, 5)
	assert.Equal(t, "mistral", all[4].ID)
}

func TestLoadBytesReplacesBuiltinByID(t *testing.T) {
	c, err := LoadBytes([]byte(`
backends:
  - id: gemini
    name: Gemini Flash
    model: google/gemini-3-flash
`))
	require.NoError(t, err)

	b := c.Backend("gemini")
	require.NotNil(t, b)
	assert.Equal(t, "Gemini Flash", b.Name)
	assert.Equal(t, "google/gemini-3-flash", b.Model)
	assert.Len(t, c.Backends(), 4)
}

func TestLoadBytesBackendDefaults(t *testing.T) {
	c, err := LoadBytes([]byte(`
backends:
  - id: bare
    name: Bare
    model: x/bare
`))
	require.NoError(t, err)

	b := c.Backend("bare")
	require.NotNil(t, b)
	assert.Equal(t, "standard", b.Tier)
	assert.Equal(t, 1.0, b.CostFactor)
}

func TestLoadBytesProfileDefaults(t *testing.T) {
	c, err := LoadBytes([]byte(`
profiles:
  - id: radio
    name: Radio desk
`))
	require.NoError(t, err)

	p := c.Profile("radio")
	require.NotNil(t, p)
	assert.Equal(t, DefaultSeverity, p.SeverityBase)
	assert.Len(t, c.Profiles(), 6)
}

func TestLoadBytesPresetWithAssignments(t *testing.T) {
	c, err := LoadBytes([]byte(`
presets:
  - id: duo
    name: Duo
    writers: [opus, gpt]
    editor: opus
    assignments:
      - backend: opus
        profile: nikkei
      - backend: gpt
        profile: web
    estimated_minutes: 1
    estimated_cost: 40
`))
	require.NoError(t, err)

	p := c.Preset("duo")
	require.NotNil(t, p)
	assert.Equal(t, []string{"opus", "gpt"}, p.Writers)
	require.Len(t, p.Assignments, 2)
	assert.Equal(t, Assignment{BackendID: "opus", ProfileID: "nikkei"}, p.Assignments[0])
	assert.Equal(t, 40, p.EstimatedCost)
}

func TestLoadBytesRejectsMalformedYAML(t *testing.T) {
	_, err := LoadBytes([]byte("backends: [unclosed"))
	assert.Error(t, err)
}

func TestLoadBytesSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown top-level key", "models:\n  - id: x\n"},
		{"backend missing model", "backends:\n  - id: x\n    name: X\n"},
		{"bad tier", "backends:\n  - id: x\n    name: X\n    model: m\n    tier: ultra\n"},
		{"negative cost", "backends:\n  - id: x\n    name: X\n    model: m\n    cost_factor: -1\n"},
		{"severity out of range", "profiles:\n  - id: p\n    name: P\n    severity_base: 9\n"},
		{"preset without writers", "presets:\n  - id: p\n    name: P\n    editor: opus\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadBytes([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid catalog overlay")
		})
	}
}
