// pkg/schemas/registry.go
package schemas

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
)

// ErrOperationNotFound is returned when a payload is validated against an
// operation the registry does not know.
var ErrOperationNotFound = errors.New("operation not found in schema registry")

// LoadRegistry reads a schema registry from a JSON file.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, err
	}
	if err := reg.Check(); err != nil {
		return nil, err
	}
	return &reg, nil
}

// Check verifies the registry is usable: a version, unique non-empty
// operation ids, and a schema per operation.
func (r *Registry) Check() error {
	if r.Version == "" {
		return errors.New("schema registry needs a version")
	}
	if len(r.Operations) == 0 {
		return errors.New("schema registry has no operations")
	}
	seen := make(map[string]bool, len(r.Operations))
	for i, op := range r.Operations {
		if op.ID == "" {
			return fmt.Errorf("operation %d has no id", i)
		}
		if seen[op.ID] {
			return fmt.Errorf("duplicate operation id %q", op.ID)
		}
		seen[op.ID] = true
		if len(op.RequestSchema) == 0 {
			return fmt.Errorf("operation %q has no request schema", op.ID)
		}
	}
	return nil
}

// Operation returns the operation with the given id, or nil.
func (r *Registry) Operation(id string) *Operation {
	for i := range r.Operations {
		if r.Operations[i].ID == id {
			return &r.Operations[i]
		}
	}
	return nil
}

// Validate checks a decoded payload against an operation's request schema.
func (r *Registry) Validate(operationID string, payload map[string]interface{}) (*ValidationResult, error) {
	op := r.Operation(operationID)
	if op == nil {
		return nil, fmt.Errorf("%w: %s", ErrOperationNotFound, operationID)
	}

	schemaLoader := gojsonschema.NewGoLoader(op.RequestSchema)
	documentLoader := gojsonschema.NewGoLoader(payload)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("validate %s: %w", operationID, err)
	}

	vr := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		vr.Errors = append(vr.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    desc.Type(),
		})
	}
	return vr, nil
}
