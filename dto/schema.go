package dto

import (
	"fmt"
)

// DefaultMode classifies how a resolved field obtains its value when absent.
type DefaultMode int

const (
	// ModeRequired marks a field with no default: a value must be supplied.
	ModeRequired DefaultMode = iota
	// ModeNull defaults the field to null.
	ModeNull
	// ModeStatic defaults the field to a fixed value.
	ModeStatic
	// ModeFactory defaults the field to the result of a factory call.
	ModeFactory
)

// Default is the resolved default of a field.
type Default struct {
	Mode    DefaultMode
	Value   any
	Factory func() any
}

// RequiredField returns the no-default marker.
func RequiredField() Default { return Default{Mode: ModeRequired} }

// NullDefault returns a null default.
func NullDefault() Default { return Default{Mode: ModeNull} }

// StaticDefault returns a fixed-value default.
func StaticDefault(value any) Default { return Default{Mode: ModeStatic, Value: value} }

// FactoryDefault returns a computed default.
func FactoryDefault(factory func() any) Default { return Default{Mode: ModeFactory, Factory: factory} }

// IsRequired reports whether the field has no default.
func (d Default) IsRequired() bool { return d.Mode == ModeRequired }

// Field is a resolved field: the (name, type, default) triple the
// synthesizer assembles schemas from, plus optional override metadata.
type Field struct {
	Name    string
	Type    Type
	Default Default
	Spec    *FieldSpec
	Doc     string
}

// Schema is a synthesized DTO schema descriptor. It is created once per
// derivation, cached by the registry, and never mutated afterwards — except
// for the one-shot forward-reference resolution performed by Rebuild.
type Schema struct {
	Name    string
	Entity  string
	Doc     string
	Fields  []Field
	Options SchemaOptions
}

// Field returns the field with the given name.
func (s *Schema) Field(name string) (*Field, bool) {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i], true
		}
	}
	return nil, false
}

// FieldNames returns the field names in schema order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i := range s.Fields {
		names[i] = s.Fields[i].Name
	}
	return names
}

// RequiredFields returns the names of fields without defaults.
func (s *Schema) RequiredFields() []string {
	var names []string
	for i := range s.Fields {
		if s.Fields[i].Default.IsRequired() {
			names = append(names, s.Fields[i].Name)
		}
	}
	return names
}

// Rebuild resolves the schema's forward references against the registry.
// Derivations over circular entity graphs leave reference-by-name types
// behind; callers invoke Rebuild once all interdependent schemas exist.
func (s *Schema) Rebuild(reg *Registry) error {
	for i := range s.Fields {
		if err := resolveRefs(&s.Fields[i].Type, reg, s.Name, s.Fields[i].Name); err != nil {
			return err
		}
	}
	return nil
}

func resolveRefs(t *Type, reg *Registry, schemaName, fieldName string) error {
	switch t.Kind {
	case KindList:
		return resolveRefs(t.Elem, reg, schemaName, fieldName)
	case KindObject:
		if t.Ref != nil {
			return nil
		}
		target, ok := reg.SchemaByName(t.RefName)
		if !ok {
			return fmt.Errorf("unresolved forward reference %q on %s.%s", t.RefName, schemaName, fieldName)
		}
		t.Ref = target
	}
	return nil
}
