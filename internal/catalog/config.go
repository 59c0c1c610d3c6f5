package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// defaultPrinter is used to format schema validation error messages.
var defaultPrinter = message.NewPrinter(language.English)

// catalogSchema is the compiled JSON Schema for council.yaml overlay files.
var catalogSchema *jsonschema.Schema

func init() {
	catalogSchema = mustCompileSchema(catalogSchemaJSON, "council.schema.json")
}

func mustCompileSchema(raw string, name string) *jsonschema.Schema {
	schemaDoc, err := jsonschema.UnmarshalJSON(strings.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// overlayFile mirrors the council.yaml layout. Entries are merged over the
// builtin catalog by id: a matching id replaces the builtin record, a new id
// is appended.
type overlayFile struct {
	Backends []overlayBackend `mapstructure:"backends"`
	Profiles []overlayProfile `mapstructure:"profiles"`
	Presets  []overlayPreset  `mapstructure:"presets"`
}

type overlayBackend struct {
	ID          string  `mapstructure:"id"`
	Name        string  `mapstructure:"name"`
	Model       string  `mapstructure:"model"`
	Provider    string  `mapstructure:"provider"`
	Tier        string  `mapstructure:"tier"`
	Description string  `mapstructure:"description"`
	CostFactor  float64 `mapstructure:"cost_factor"`
}

type overlayProfile struct {
	ID           string   `mapstructure:"id"`
	Name         string   `mapstructure:"name"`
	MediaType    string   `mapstructure:"media_type"`
	Outlet       string   `mapstructure:"outlet"`
	FocusAreas   []string `mapstructure:"focus_areas"`
	Tone         string   `mapstructure:"tone"`
	Description  string   `mapstructure:"description"`
	SeverityBase int      `mapstructure:"severity_base"`
}

type overlayPreset struct {
	ID               string              `mapstructure:"id"`
	Name             string              `mapstructure:"name"`
	Description      string              `mapstructure:"description"`
	Writers          []string            `mapstructure:"writers"`
	Assignments      []overlayAssignment `mapstructure:"assignments"`
	Editor           string              `mapstructure:"editor"`
	EstimatedMinutes int                 `mapstructure:"estimated_minutes"`
	EstimatedCost    int                 `mapstructure:"estimated_cost"`
}

type overlayAssignment struct {
	Backend string `mapstructure:"backend"`
	Profile string `mapstructure:"profile"`
}

// Load returns the builtin catalog merged with the overlay file at path.
// A missing file is not an error; the builtin catalog is returned as-is.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Builtin(), nil
		}
		return nil, fmt.Errorf("reading catalog overlay: %w", err)
	}
	return LoadBytes(data)
}

// LoadBytes parses, validates, and merges raw council.yaml content over the
// builtin catalog.
func LoadBytes(data []byte) (*Catalog, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog overlay: %w", err)
	}
	if doc == nil {
		return Builtin(), nil
	}

	if errs := validateAgainstSchema(catalogSchema, doc); len(errs) > 0 {
		return nil, fmt.Errorf("invalid catalog overlay: %s", strings.Join(errs, "; "))
	}

	var overlay overlayFile
	if err := mapstructure.Decode(doc, &overlay); err != nil {
		return nil, fmt.Errorf("decoding catalog overlay: %w", err)
	}

	c := Builtin()
	for _, ob := range overlay.Backends {
		b := Backend{
			ID:          ob.ID,
			Name:        ob.Name,
			Model:       ob.Model,
			Provider:    ob.Provider,
			Tier:        ob.Tier,
			Description: ob.Description,
			CostFactor:  ob.CostFactor,
		}
		if b.Tier == "" {
			b.Tier = "standard"
		}
		if b.CostFactor == 0 {
			b.CostFactor = 1.0
		}
		if _, ok := c.backends[b.ID]; !ok {
			c.backendOrder = append(c.backendOrder, b.ID)
		}
		c.backends[b.ID] = &b
	}
	for _, op := range overlay.Profiles {
		p := Profile{
			ID:           op.ID,
			Name:         op.Name,
			MediaType:    op.MediaType,
			Outlet:       op.Outlet,
			FocusAreas:   op.FocusAreas,
			Tone:         op.Tone,
			Description:  op.Description,
			SeverityBase: op.SeverityBase,
		}
		if p.SeverityBase == 0 {
			p.SeverityBase = DefaultSeverity
		}
		if _, ok := c.profiles[p.ID]; !ok {
			c.profileOrder = append(c.profileOrder, p.ID)
		}
		c.profiles[p.ID] = &p
	}
	for _, op := range overlay.Presets {
		p := Preset{
			ID:               op.ID,
			Name:             op.Name,
			Description:      op.Description,
			Writers:          op.Writers,
			Editor:           op.Editor,
			EstimatedMinutes: op.EstimatedMinutes,
			EstimatedCost:    op.EstimatedCost,
		}
		for _, a := range op.Assignments {
			p.Assignments = append(p.Assignments, Assignment{BackendID: a.Backend, ProfileID: a.Profile})
		}
		if _, ok := c.presets[p.ID]; !ok {
			c.presetOrder = append(c.presetOrder, p.ID)
		}
		c.presets[p.ID] = &p
	}
	return c, nil
}

func validateAgainstSchema(schema *jsonschema.Schema, doc any) []string {
	instance, err := toJSONCompatible(doc)
	if err != nil {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	err = schema.Validate(instance)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	var errs []string
	collectSchemaErrors(ve, &errs)
	return errs
}

func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/"
		if len(ve.InstanceLocation) > 0 {
			loc = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*errs = append(*errs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(defaultPrinter)))
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, errs)
	}
}

// toJSONCompatible round-trips a YAML-decoded value through JSON so the
// schema validator sees the numeric types it expects.
func toJSONCompatible(doc any) (any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(raw))
}
