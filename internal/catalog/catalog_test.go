package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinContents(t *testing.T) {
	c := Builtin()

	assert.Len(t, c.Backends(), 4)
	assert.Len(t, c.Profiles(), 5)
	assert.Len(t, c.Presets(), 3)

	for _, id := range []string{"opus", "gpt", "gemini", "grok"} {
		b := c.Backend(id)
		require.NotNil(t, b, "backend %s", id)
		assert.NotEmpty(t, b.Name)
		assert.NotEmpty(t, b.Model)
		assert.Greater(t, b.CostFactor, 0.0)
	}
	for _, id := range []string{"nikkei", "lifestyle", "web", "trade", "tv"} {
		p := c.Profile(id)
		require.NotNil(t, p, "profile %s", id)
		assert.NotEmpty(t, p.Outlet)
		assert.NotEmpty(t, p.FocusAreas)
		assert.GreaterOrEqual(t, p.SeverityBase, MinSeverity)
		assert.LessOrEqual(t, p.SeverityBase, MaxSeverity)
	}
	for _, id := range []string{"simple", "standard", "full"} {
		require.NotNil(t, c.Preset(id), "preset %s", id)
	}
}

func TestBuiltinLookupUnknown(t *testing.T) {
	c := Builtin()

	assert.Nil(t, c.Backend("nope"))
	assert.Nil(t, c.Profile("nope"))
	assert.Nil(t, c.Preset("nope"))
}

func TestBuiltinPresetsReferenceKnownIDs(t *testing.T) {
	c := Builtin()

	for _, p := range c.Presets() {
		assert.NotNil(t, c.Backend(p.Editor), "preset %s editor %s", p.ID, p.Editor)
		for _, w := range p.Writers {
			assert.NotNil(t, c.Backend(w), "preset %s writer %s", p.ID, w)
		}
		for _, a := range p.Assignments {
			assert.NotNil(t, c.Backend(a.BackendID), "preset %s backend %s", p.ID, a.BackendID)
			assert.NotNil(t, c.Profile(a.ProfileID), "preset %s profile %s", p.ID, a.ProfileID)
		}
	}
}

func TestBuiltinFullPresetIsCompleteMatrix(t *testing.T) {
	c := Builtin()

	full := c.Preset("full")
	require.NotNil(t, full)
	assert.Len(t, full.Writers, 4)
	assert.Len(t, full.Assignments, 20)

	seen := map[Assignment]bool{}
	for _, a := range full.Assignments {
		assert.False(t, seen[a], "duplicate assignment %+v", a)
		seen[a] = true
	}
}

func TestDefaultsAreResolvable(t *testing.T) {
	c := Builtin()

	assert.NotNil(t, c.Preset(DefaultPresetID))
	assert.NotNil(t, c.Backend(DefaultEditorID))
	for _, id := range DefaultWriterIDs {
		assert.NotNil(t, c.Backend(id), "default writer %s", id)
	}
	assert.Contains(t, SeverityLevels, DefaultSeverity)
}

func TestProfileIDsSorted(t *testing.T) {
	ids := Builtin().ProfileIDs()
	assert.Equal(t, []string{"lifestyle", "nikkei", "trade", "tv", "web"}, ids)
}

func TestClampSeverity(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, DefaultSeverity},
		{-1, DefaultSeverity},
		{6, DefaultSeverity},
		{100, DefaultSeverity},
		{1, 1},
		{3, 3},
		{5, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampSeverity(tt.in), "ClampSeverity(%d)", tt.in)
	}
}

func TestSeverityLevels(t *testing.T) {
	require.Len(t, SeverityLevels, 5)
	for lvl := MinSeverity; lvl <= MaxSeverity; lvl++ {
		s, ok := SeverityLevels[lvl]
		require.True(t, ok, "level %d", lvl)
		assert.NotEmpty(t, s.Name)
		assert.Greater(t, s.Modifier, 0.0)
	}
	assert.Equal(t, 1.0, SeverityLevels[DefaultSeverity].Modifier)
}

func TestEstimateCost(t *testing.T) {
	c := Builtin()

	// gemini writer (15*1) + one gemini evaluation (8*1) + gemini editor (20*1).
	got := c.EstimateCost(
		[]string{"gemini"},
		[]Assignment{{BackendID: "gemini", ProfileID: "tv"}},
		"gemini",
	)
	assert.Equal(t, 43, got)

	// Unknown ids contribute nothing.
	assert.Equal(t, 0, c.EstimateCost([]string{"nope"}, nil, "also-nope"))
}

func TestEstimateMinutes(t *testing.T) {
	c := Builtin()

	assert.Equal(t, 1, c.EstimateMinutes(nil, nil))
	assert.Equal(t, 1, c.EstimateMinutes([]string{"opus"}, make([]Assignment, 4)))
	assert.Equal(t, 2, c.EstimateMinutes([]string{"opus", "gpt"}, make([]Assignment, 10)))
}
