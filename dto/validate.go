package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// validatorState lazily compiles the exported JSON Schema document once per
// schema.
type validatorState struct {
	once     sync.Once
	compiled *jsonschema.Schema
	err      error
}

var validators sync.Map // *Schema -> *validatorState

// Validator compiles the schema's exported JSON Schema document with the
// validation library and returns the compiled form.
func (s *Schema) Validator() (*jsonschema.Schema, error) {
	stateAny, _ := validators.LoadOrStore(s, &validatorState{})
	state := stateAny.(*validatorState)
	state.once.Do(func() {
		doc, err := json.Marshal(s.JSONSchema())
		if err != nil {
			state.err = fmt.Errorf("marshalling schema %q: %w", s.Name, err)
			return
		}
		url := strings.ToLower(s.Name) + ".schema.json"
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(url, bytes.NewReader(doc)); err != nil {
			state.err = fmt.Errorf("adding schema resource %q: %w", s.Name, err)
			return
		}
		state.compiled, state.err = compiler.Compile(url)
	})
	return state.compiled, state.err
}

// Validate checks an instance against the schema. The instance must be
// JSON-shaped (maps, slices, strings, numbers, booleans, nil). Validation
// errors come straight from the validation library.
func (s *Schema) Validate(instance any) error {
	compiled, err := s.Validator()
	if err != nil {
		return err
	}
	return compiled.Validate(instance)
}

// Conform builds an instance from the given values: declared fields are
// copied, absent fields take their defaults (static, factory or null), and
// absent required fields are an error. Unknown keys are kept only when the
// schema allows extra properties.
func (s *Schema) Conform(values map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(s.Fields))
	var missing []string

	for i := range s.Fields {
		field := &s.Fields[i]
		if v, ok := values[field.Name]; ok {
			out[field.Name] = v
			continue
		}
		switch field.Default.Mode {
		case ModeRequired:
			missing = append(missing, field.Name)
		case ModeNull:
			out[field.Name] = nil
		case ModeStatic:
			out[field.Name] = field.Default.Value
		case ModeFactory:
			out[field.Name] = field.Default.Factory()
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("schema %q: missing required fields: %s", s.Name, strings.Join(missing, ", "))
	}

	if s.Options.AllowExtra {
		for k, v := range values {
			if _, ok := out[k]; !ok {
				out[k] = v
			}
		}
	}
	return out, nil
}
