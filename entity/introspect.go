package entity

import (
	"fmt"
	"strings"

	"github.com/overzetten/overzetten/esl/ast"
	"github.com/overzetten/overzetten/internal/debug"
)

// scalarTypes are the storage scalar type names the schema language knows.
var scalarTypes = map[string]bool{
	"Int": true, "BigInt": true, "String": true, "Boolean": true,
	"DateTime": true, "Date": true, "Time": true, "Float": true,
	"Decimal": true, "Json": true, "Bytes": true, "Any": true,
}

// IsScalarType reports whether name is a built-in storage scalar.
func IsScalarType(name string) bool {
	return scalarTypes[name]
}

// Set holds the introspected entities and enums of one schema.
type Set struct {
	entities map[string]*Entity
	order    []string
	enums    map[string][]string
}

// FromSchema introspects a parsed schema into entity metadata. It resolves
// inheritance, synonyms and relationship targets, and rejects declarations
// that reference unknown attributes, entities or types.
func FromSchema(schema *ast.Schema) (*Set, error) {
	set := &Set{
		entities: make(map[string]*Entity),
		enums:    make(map[string][]string),
	}
	for _, enum := range schema.Enums {
		set.enums[enum.GetName()] = enum.ValueNames()
	}

	building := make(map[string]bool)
	var build func(decl *ast.Entity) (*Entity, error)
	build = func(decl *ast.Entity) (*Entity, error) {
		name := decl.GetName()
		if existing, ok := set.entities[name]; ok {
			return existing, nil
		}
		if building[name] {
			return nil, fmt.Errorf("entity %q is part of an inheritance cycle", name)
		}
		building[name] = true
		defer delete(building, name)

		ent := &Entity{
			Name:     name,
			Doc:      decl.GetDocumentation(),
			Abstract: decl.IsAbstract(),
		}
		if !ent.Abstract {
			ent.TableName = decl.TableName()
			if ent.TableName == "" {
				ent.TableName = toSnakeCase(name)
			}
		}

		if parentName := decl.ExtendsName(); parentName != "" {
			parentDecl := schema.Entity(parentName)
			if parentDecl == nil {
				return nil, fmt.Errorf("entity %q extends unknown entity %q", name, parentName)
			}
			parent, err := build(parentDecl)
			if err != nil {
				return nil, err
			}
			// Parent attributes come first, mirroring declaration order of
			// the inheritance chain.
			ent.Columns = append(ent.Columns, parent.Columns...)
			ent.Computed = append(ent.Computed, parent.Computed...)
			ent.Synonyms = append(ent.Synonyms, parent.Synonyms...)
			ent.Relationships = append(ent.Relationships, parent.Relationships...)
		}

		for _, field := range decl.Fields {
			if err := addField(schema, set, ent, field); err != nil {
				return nil, err
			}
		}

		// Synonyms resolve against the full column set, so a synonym may
		// precede its column in the declaration.
		for _, syn := range ent.Synonyms {
			if syn.Column != nil {
				continue
			}
			col := ent.Column(syn.Of)
			if col == nil {
				return nil, fmt.Errorf("synonym %q on entity %q references unknown column %q", syn.Name, name, syn.Of)
			}
			syn.Column = col
		}

		set.entities[name] = ent
		set.order = append(set.order, name)
		return ent, nil
	}

	for _, decl := range schema.Entities {
		if _, err := build(decl); err != nil {
			return nil, err
		}
	}

	// Relationship targets may be declared later in the file.
	for _, name := range set.order {
		for _, rel := range set.entities[name].Relationships {
			if _, ok := set.entities[rel.Target]; !ok {
				return nil, fmt.Errorf("relationship %q on entity %q targets unknown entity %q", rel.Name, name, rel.Target)
			}
		}
	}

	debug.Debug("Schema introspected", "entities", len(set.order), "enums", len(set.enums))
	return set, nil
}

// addField classifies one declared field into the matching attribute kind.
func addField(schema *ast.Schema, set *Set, ent *Entity, field *ast.Field) error {
	name := field.GetName()
	typeName := field.GetTypeName()

	if syn := field.Attribute("synonym"); syn != nil {
		target, ok := exprString(syn.FirstArgument())
		if !ok {
			return fmt.Errorf("synonym %q on entity %q needs a target column name", name, ent.Name)
		}
		ent.Synonyms = append(ent.Synonyms, &Synonym{Name: name, Of: target})
		return nil
	}

	if comp := field.Attribute("computed"); comp != nil {
		expr, _ := exprString(comp.FirstArgument())
		ent.Computed = append(ent.Computed, &Computed{
			Name:     name,
			Expr:     expr,
			Type:     typeName,
			Nullable: field.Arity.IsOptional(),
			DTOType:  dtoAnnotation(field),
			Doc:      field.GetDocumentation(),
		})
		return nil
	}

	if typeName == "" {
		return fmt.Errorf("field %q on entity %q has no type", name, ent.Name)
	}

	// A non-scalar, non-enum type name is a relationship to that entity.
	if !IsScalarType(typeName) {
		if _, isEnum := set.enums[typeName]; !isEnum {
			if schema.Entity(typeName) == nil {
				return fmt.Errorf("field %q on entity %q has unknown type %q", name, ent.Name, typeName)
			}
			rel := &Relationship{
				Name:   name,
				Target: typeName,
				ToMany: field.Arity.IsList(),
				Doc:    field.GetDocumentation(),
			}
			if attr := field.Attribute("relation"); attr != nil {
				if backref, ok := exprString(attr.NamedArgument("backref")); ok {
					rel.BackRef = backref
				} else if backref, ok := exprString(attr.FirstArgument()); ok {
					rel.BackRef = backref
				}
			}
			ent.Relationships = append(ent.Relationships, rel)
			return nil
		}
	}

	col := &Column{
		Name:        name,
		ColumnName:  name,
		StorageType: typeName,
		Nullable:    field.Arity.IsOptional(),
		PrimaryKey:  field.HasAttribute("id"),
		Unique:      field.HasAttribute("unique"),
		DTOType:     dtoAnnotation(field),
		Doc:         field.GetDocumentation(),
	}
	if mapped := field.Attribute("map"); mapped != nil {
		if physical, ok := exprString(mapped.FirstArgument()); ok {
			col.ColumnName = physical
		}
	}
	if err := applyDefault(col, field, ent.Name); err != nil {
		return err
	}
	ent.Columns = append(ent.Columns, col)
	return nil
}

// applyDefault interprets the @default attribute of a column field.
func applyDefault(col *Column, field *ast.Field, entityName string) error {
	attr := field.Attribute("default")
	if attr == nil {
		return nil
	}
	arg := attr.FirstArgument()
	if arg == nil {
		return fmt.Errorf("@default on %q.%q needs an argument", entityName, col.Name)
	}

	if fn, ok := arg.AsFunction(); ok {
		switch fn.Name {
		case "autoincrement":
			col.AutoIncrement = true
		case "now":
			col.Default = &Default{Kind: DefaultNow}
		case "uuid":
			col.Default = &Default{Kind: DefaultUUID}
		case "ulid":
			col.Default = &Default{Kind: DefaultULID}
		case "sequence":
			seq, _ := fn.FirstStringArgument()
			col.Default = &Default{Kind: DefaultSequence, Name: seq}
		case "dbgenerated":
			sql, _ := fn.FirstStringArgument()
			if sql == "" {
				sql = "true"
			}
			col.ServerDefault = sql
		default:
			return fmt.Errorf("unknown default function %q on %q.%q", fn.Name, entityName, col.Name)
		}
		return nil
	}

	value, ok := ast.LiteralValue(arg)
	if !ok {
		return fmt.Errorf("unsupported default expression on %q.%q", entityName, col.Name)
	}
	col.Default = &Default{Kind: DefaultLiteral, Value: value}
	return nil
}

func dtoAnnotation(field *ast.Field) string {
	attr := field.Attribute("dto")
	if attr == nil {
		return ""
	}
	arg := attr.FirstArgument()
	if arg == nil {
		return ""
	}
	if s, ok := arg.AsStringValue(); ok {
		return s.GetValue()
	}
	return arg.String()
}

func exprString(expr ast.Expression) (string, bool) {
	if expr == nil {
		return "", false
	}
	if s, ok := expr.AsStringValue(); ok {
		return s.GetValue(), true
	}
	if c, ok := expr.AsConstantValue(); ok {
		return c.Value, true
	}
	return "", false
}

// Entity returns the introspected entity with the given name.
func (s *Set) Entity(name string) (*Entity, bool) {
	ent, ok := s.entities[name]
	return ent, ok
}

// EntityNames returns entity names in declaration order.
func (s *Set) EntityNames() []string {
	return append([]string(nil), s.order...)
}

// EnumValues returns the values of a declared enum.
func (s *Set) EnumValues(name string) ([]string, bool) {
	values, ok := s.enums[name]
	return values, ok
}

// Introspect returns the metadata of a mapped entity. Abstract entities have
// no table and cannot be introspected for DTO derivation.
func (s *Set) Introspect(name string) (*Entity, error) {
	ent, ok := s.entities[name]
	if !ok {
		return nil, fmt.Errorf("unknown entity %q", name)
	}
	if ent.Abstract {
		return nil, fmt.Errorf("cannot derive a DTO from abstract or unmapped entity %q", name)
	}
	return ent, nil
}

func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		result.WriteRune(r)
	}
	return strings.ToLower(result.String())
}
