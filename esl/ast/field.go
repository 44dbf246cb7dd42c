package ast

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// FieldArity represents the cardinality of a field.
type FieldArity int

const (
	// FieldArityRequired means the field must have a value.
	FieldArityRequired FieldArity = iota
	// FieldArityOptional means the field can be null (Type?).
	FieldArityOptional
	// FieldArityList means the field is a collection (Type[]).
	FieldArityList
)

// String returns the source suffix for the arity.
func (a FieldArity) String() string {
	switch a {
	case FieldArityOptional:
		return "?"
	case FieldArityList:
		return "[]"
	default:
		return ""
	}
}

// IsRequired returns true if the field is required.
func (a FieldArity) IsRequired() bool { return a == FieldArityRequired }

// IsOptional returns true if the field is optional.
func (a FieldArity) IsOptional() bool { return a == FieldArityOptional }

// IsList returns true if the field is a list.
func (a FieldArity) IsList() bool { return a == FieldArityList }

// FieldType represents the declared type of a field.
type FieldType struct {
	Pos  lexer.Position
	Name string `@Ident`
}

// String returns the type name.
func (f *FieldType) String() string {
	if f == nil {
		return ""
	}
	return f.Name
}

// Field represents a field in an entity declaration.
type Field struct {
	Pos           lexer.Position
	Documentation *CommentBlock `@@?`
	Name          *FieldName    `@@`
	Type          *FieldType    `@@?`
	Arity         FieldArity    // filled in after parsing from the suffixes below
	ListSuffix    *string       `@("[" "]")?`
	OptionalMark  *string       `@"?"?`
	Attributes    []*Attribute  `@@*`
}

// GetName returns the field name.
func (f *Field) GetName() string {
	if f.Name == nil {
		return ""
	}
	return f.Name.Name
}

// GetTypeName returns the declared type name, or "".
func (f *Field) GetTypeName() string {
	if f.Type == nil {
		return ""
	}
	return f.Type.Name
}

// String returns a source-like representation of the field.
func (f *Field) String() string {
	return fmt.Sprintf("%s %s%s", f.GetName(), f.GetTypeName(), f.Arity.String())
}

// Attribute returns the attribute with the given name, or nil.
func (f *Field) Attribute(name string) *Attribute {
	for _, attr := range f.Attributes {
		if attr.GetName() == name {
			return attr
		}
	}
	return nil
}

// HasAttribute reports whether the field carries the named attribute.
func (f *Field) HasAttribute(name string) bool {
	return f.Attribute(name) != nil
}

// GetDocumentation returns the field documentation text.
func (f *Field) GetDocumentation() string {
	if f.Documentation == nil {
		return ""
	}
	return f.Documentation.GetText()
}
