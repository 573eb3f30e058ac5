package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/affordo/internal/domain"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands
// and API requests.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	// Housing
	registry.Register("scale_price", createScalePrice)
	registry.Register("set_price", createSetPrice)
	registry.Register("set_down_payment", createSetDownPayment)
	registry.Register("adjust_apr", createAdjustAPR)
	registry.Register("set_apr", createSetAPR)
	registry.Register("set_term", createSetTerm)

	// Household
	registry.Register("scale_income", createScaleIncome)
	registry.Register("set_income", createSetIncome)
	registry.Register("set_monthly", createSetMonthly)
	registry.Register("move_state", createMoveState)
	registry.Register("set_filing_status", createSetFilingStatus)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the sorted names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "scale_price:factor=0.9"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// floatParam reads a required numeric parameter
func floatParam(transform string, params map[string]string, key string) (float64, error) {
	raw, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func stringParam(transform string, params map[string]string, key string) (string, error) {
	raw, ok := params[key]
	if !ok || raw == "" {
		return "", fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	return raw, nil
}

// Factory functions for each transform

func createScalePrice(params map[string]string) (ScenarioTransform, error) {
	factor, err := floatParam("scale_price", params, "factor")
	if err != nil {
		return nil, err
	}
	return &ScalePrice{Factor: factor}, nil
}

func createSetPrice(params map[string]string) (ScenarioTransform, error) {
	price, err := floatParam("set_price", params, "price")
	if err != nil {
		return nil, err
	}
	return &SetPrice{Price: price}, nil
}

func createSetDownPayment(params map[string]string) (ScenarioTransform, error) {
	pct, err := floatParam("set_down_payment", params, "pct")
	if err != nil {
		return nil, err
	}
	return &SetDownPayment{Pct: pct}, nil
}

func createAdjustAPR(params map[string]string) (ScenarioTransform, error) {
	delta, err := floatParam("adjust_apr", params, "delta")
	if err != nil {
		return nil, err
	}
	return &AdjustAPR{Delta: delta}, nil
}

func createSetAPR(params map[string]string) (ScenarioTransform, error) {
	rate, err := floatParam("set_apr", params, "rate")
	if err != nil {
		return nil, err
	}
	return &SetAPR{Rate: rate}, nil
}

func createSetTerm(params map[string]string) (ScenarioTransform, error) {
	years, err := floatParam("set_term", params, "years")
	if err != nil {
		return nil, err
	}
	return &SetTerm{Years: years}, nil
}

func createScaleIncome(params map[string]string) (ScenarioTransform, error) {
	factor, err := floatParam("scale_income", params, "factor")
	if err != nil {
		return nil, err
	}
	return &ScaleIncome{Factor: factor}, nil
}

func createSetIncome(params map[string]string) (ScenarioTransform, error) {
	income, err := floatParam("set_income", params, "income")
	if err != nil {
		return nil, err
	}
	return &SetIncome{Income: income}, nil
}

func createSetMonthly(params map[string]string) (ScenarioTransform, error) {
	field, err := stringParam("set_monthly", params, "field")
	if err != nil {
		return nil, err
	}
	amount, err := floatParam("set_monthly", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetMonthly{Field: MonthlyField(field), Amount: amount}, nil
}

func createMoveState(params map[string]string) (ScenarioTransform, error) {
	state, err := stringParam("move_state", params, "state")
	if err != nil {
		return nil, err
	}
	return &MoveState{State: state}, nil
}

func createSetFilingStatus(params map[string]string) (ScenarioTransform, error) {
	raw, err := stringParam("set_filing_status", params, "status")
	if err != nil {
		return nil, err
	}
	status, err := domain.ParseFilingStatus(raw)
	if err != nil {
		return nil, err
	}
	return &SetFilingStatus{Status: status}, nil
}
