// Package wizard collects run parameters interactively and renders them as
// a run request file for the CLI.
package wizard

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/unbobounbobo/press-council/internal/catalog"
	"github.com/unbobounbobo/press-council/internal/council"
)

// RequestSpec holds all fields collected during the interactive wizard.
type RequestSpec struct {
	Input    string
	PresetID string
	Writers  []string
	Editor   string
	Severity int
}

// RunRequestWizard runs an interactive huh form to collect run parameters.
// Choices are drawn from the catalog; leaving writers or editor empty keeps
// the preset's defaults.
func RunRequestWizard(in io.Reader, out io.Writer, cat *catalog.Catalog) (*RequestSpec, error) {
	var (
		input       string
		presetID    = catalog.DefaultPresetID
		writers     []string
		editor      string
		severityRaw = strconv.Itoa(catalog.DefaultSeverity)
	)

	presetOptions := make([]huh.Option[string], 0, len(cat.Presets()))
	for _, p := range cat.Presets() {
		presetOptions = append(presetOptions, huh.NewOption(fmt.Sprintf("%s — %s", p.ID, p.Name), p.ID))
	}

	backendOptions := make([]huh.Option[string], 0, len(cat.Backends()))
	for _, b := range cat.Backends() {
		backendOptions = append(backendOptions, huh.NewOption(fmt.Sprintf("%s (%s)", b.ID, b.Name), b.ID))
	}

	editorOptions := append([]huh.Option[string]{huh.NewOption("preset default", "")}, backendOptions...)

	severityOptions := make([]huh.Option[string], 0, catalog.MaxSeverity)
	for lvl := catalog.MinSeverity; lvl <= catalog.MaxSeverity; lvl++ {
		severityOptions = append(severityOptions,
			huh.NewOption(fmt.Sprintf("%d — %s", lvl, catalog.SeverityLevels[lvl].Name), strconv.Itoa(lvl)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Announcement").
				Description("What should the press release announce?").
				Value(&input).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("announcement is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Preset").
				Description("Named bundle of writers, evaluations, and editor").
				Options(presetOptions...).
				Value(&presetID),
			huh.NewMultiSelect[string]().
				Title("Writers").
				Description("Leave empty to keep the preset's writers").
				Options(backendOptions...).
				Value(&writers),
			huh.NewSelect[string]().
				Title("Editor").
				Options(editorOptions...).
				Value(&editor),
			huh.NewSelect[string]().
				Title("Evaluation strictness").
				Options(severityOptions...).
				Value(&severityRaw),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	severity, err := strconv.Atoi(severityRaw)
	if err != nil {
		severity = catalog.DefaultSeverity
	}

	return &RequestSpec{
		Input:    strings.TrimSpace(input),
		PresetID: presetID,
		Writers:  writers,
		Editor:   editor,
		Severity: severity,
	}, nil
}

// GenerateRequest renders a RequestSpec as the run request JSON the CLI
// consumes.
func GenerateRequest(spec *RequestSpec) ([]byte, error) {
	req := council.Request{
		Input:    spec.Input,
		PresetID: spec.PresetID,
		Writers:  spec.Writers,
		Editor:   spec.Editor,
		Severity: spec.Severity,
	}
	data, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	return append(data, '\n'), nil
}
