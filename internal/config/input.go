package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rgehrsitz/affordo/internal/calculation"
	"github.com/rgehrsitz/affordo/internal/domain"
	"gopkg.in/yaml.v3"
)

// MaxGridCells bounds the size of a grid sweep accepted from a file or request
const MaxGridCells = 20_000

// Configuration is one scenario file: the base scenario, the grid sweep and
// the tax tables the engine runs over
type Configuration struct {
	Scenario domain.ScenarioInputs `yaml:"scenario" json:"scenario"`
	Grid     domain.GridConfig     `yaml:"grid" json:"grid"`
	TaxRules calculation.TaxRules  `yaml:"tax_rules" json:"tax_rules"`
}

// DefaultConfiguration returns the built-in scenario, grid and 2026 tax tables
func DefaultConfiguration() *Configuration {
	return &Configuration{
		Scenario: domain.DefaultScenarioInputs(),
		Grid:     domain.DefaultGridConfig(),
		TaxRules: calculation.DefaultTaxRules(),
	}
}

// NewEngine builds a calculation engine over the configuration's tax tables
func (c *Configuration) NewEngine(logger calculation.Logger) *calculation.Engine {
	engine := calculation.NewEngineWithRules(c.TaxRules)
	engine.SetLogger(logger)
	return engine
}

// FieldError describes one rejected input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every rejected field of one input
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// InputParser handles parsing and validation of scenario files
type InputParser struct {
	validate *validator.Validate
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their file names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return &InputParser{validate: v}
}

// LoadFromFile loads a configuration from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	cfg, err := ip.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}

// Parse decodes a YAML document over the defaults and validates the result.
// Fields the document omits keep their default values; unknown fields are
// rejected.
func (ip *InputParser) Parse(data []byte) (*Configuration, error) {
	cfg := DefaultConfiguration()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	cfg.TaxRules = cfg.TaxRules.Clone()

	if err := ip.ValidateConfiguration(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(cfg *Configuration) error {
	if err := ip.ValidateScenario(&cfg.Scenario); err != nil {
		return fmt.Errorf("scenario validation failed: %w", err)
	}
	if err := ip.ValidateGrid(&cfg.Grid); err != nil {
		return fmt.Errorf("grid validation failed: %w", err)
	}
	if err := cfg.TaxRules.Validate(); err != nil {
		return fmt.Errorf("tax rules validation failed: %w", err)
	}
	return nil
}

// ValidateScenario checks one scenario's fields
func (ip *InputParser) ValidateScenario(in *domain.ScenarioInputs) error {
	return ip.check(in)
}

// ValidateGrid checks the sweep bounds and that the grid stays within MaxGridCells
func (ip *InputParser) ValidateGrid(g *domain.GridConfig) error {
	if err := ip.check(g); err != nil {
		return err
	}
	rows := calculation.RangeLen(g.IncomeMin, g.IncomeMax, g.IncomeStep)
	cols := calculation.RangeLen(g.PriceMin, g.PriceMax, g.PriceStep)
	if int64(rows)*int64(cols) > MaxGridCells {
		return &ValidationError{Fields: []FieldError{{
			Field:   "grid",
			Message: fmt.Sprintf("%d x %d cells exceeds the limit of %d", rows, cols, MaxGridCells),
		}}}
	}
	return nil
}

func (ip *InputParser) check(v any) error {
	err := ip.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: describe(fe)})
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "alpha":
		return "must contain letters only"
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "gtefield":
		return "must not be less than " + fe.Param()
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
