// Package ast defines the syntax tree for the entity schema language.
package ast

// Schema is the root of a parsed entity schema file.
type Schema struct {
	Entities []*Entity
	Enums    []*Enum
}

// Entity returns the declared entity with the given name, or nil.
func (s *Schema) Entity(name string) *Entity {
	for _, e := range s.Entities {
		if e.GetName() == name {
			return e
		}
	}
	return nil
}

// Enum returns the declared enum with the given name, or nil.
func (s *Schema) Enum(name string) *Enum {
	for _, e := range s.Enums {
		if e.GetName() == name {
			return e
		}
	}
	return nil
}

// EntityNames returns the entity names in declaration order.
func (s *Schema) EntityNames() []string {
	names := make([]string, len(s.Entities))
	for i, e := range s.Entities {
		names[i] = e.GetName()
	}
	return names
}
