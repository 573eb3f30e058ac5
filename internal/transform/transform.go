// Package transform applies named, composable edits to a base scenario.
package transform

import (
	"fmt"

	"github.com/rgehrsitz/affordo/internal/domain"
)

// ScenarioTransform defines the interface for all scenario transformations.
// Transforms are composable edits to ScenarioInputs used by scenario
// comparison and the affordability solver.
type ScenarioTransform interface {
	// Apply returns a modified copy of base. base itself is never changed.
	Apply(base domain.ScenarioInputs) (domain.ScenarioInputs, error)

	// Name returns a short identifier for this transform (e.g., "scale_price").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks the transform parameters against base without applying it.
	Validate(base domain.ScenarioInputs) error
}

// ApplyTransforms applies a sequence of transforms to a base scenario.
// Transforms are applied in order, with each transform receiving the output of the previous one.
func ApplyTransforms(base domain.ScenarioInputs, transforms []ScenarioTransform) (domain.ScenarioInputs, error) {
	current := base.Clone()

	for i, transform := range transforms {
		if transform == nil {
			return domain.ScenarioInputs{}, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return domain.ScenarioInputs{}, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return domain.ScenarioInputs{}, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}
		current = next
	}

	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}

func invalid(name, reason string) error {
	return NewTransformError(name, "validate", reason, nil)
}
