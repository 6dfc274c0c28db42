package trials

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/boarding-sim/sim"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
	// Report YAML keys, not Go field names.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
}

// Experiment holds a policy comparison, loadable from a YAML file.
// A nil Costs means "not set in YAML" and selects sim.DefaultCostModel.
type Experiment struct {
	Layout   sim.LayoutConfig `yaml:"layout"`
	Policies []string         `yaml:"policies" validate:"required,min=1,dive,required"`
	Trials   int              `yaml:"trials" validate:"gt=0"`
	Workers  int              `yaml:"workers" validate:"gte=0"` // 0 = one per CPU
	Seed     int64            `yaml:"seed"`
	MaxIter  int              `yaml:"max_iter" validate:"gte=0"` // 0 = sim.DefaultMaxIter
	Zones    int              `yaml:"zones" validate:"gte=0"`
	Costs    *sim.CostModel   `yaml:"costs"`
}

// LoadExperiment reads and parses a YAML experiment file.
// Unknown keys are errors so that typos never silently fall back to defaults.
func LoadExperiment(path string) (*Experiment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading experiment: %w", err)
	}
	var exp Experiment
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&exp); err != nil {
		return nil, fmt.Errorf("parsing experiment: %w", err)
	}
	return &exp, nil
}

// Validate checks field ranges, layout parity, and policy names.
func (e *Experiment) Validate() error {
	if e == nil {
		return errors.New("experiment cannot be nil")
	}
	if err := validate.Struct(e); err != nil {
		return formatValidationError(err)
	}
	if e.Layout.SeatsPerRow%2 != 0 {
		return fmt.Errorf("layout.seats_per_row: must be even, got %d", e.Layout.SeatsPerRow)
	}
	seen := make(map[string]bool, len(e.Policies))
	for _, name := range e.Policies {
		if !sim.IsValidBoardingPolicy(name) {
			return fmt.Errorf("policies: unknown boarding policy %q; valid policies: %v", name, sim.BoardingPolicyNames())
		}
		if seen[name] {
			return fmt.Errorf("policies: %q listed twice", name)
		}
		seen[name] = true
	}
	return nil
}

// CostModel returns the configured costs, or the defaults when unset.
func (e *Experiment) CostModel() sim.CostModel {
	if e.Costs == nil {
		return sim.DefaultCostModel()
	}
	return *e.Costs
}

// RunConfig returns the single-run configuration of one policy and seed.
func (e *Experiment) RunConfig(policy string, seed int64) sim.RunConfig {
	return sim.RunConfig{
		Layout:  e.Layout,
		Policy:  sim.PolicyConfig{Name: policy, Zones: e.Zones},
		MaxIter: e.MaxIter,
		Seed:    seed,
	}
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := strings.TrimPrefix(e.Namespace(), "Experiment.")
		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must have at least %s entries", field, e.Param())
		case "gt":
			return fmt.Errorf("%s: must be greater than %s, got %v", field, e.Param(), e.Value())
		case "gte":
			return fmt.Errorf("%s: must be at least %s, got %v", field, e.Param(), e.Value())
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}
	return err
}
