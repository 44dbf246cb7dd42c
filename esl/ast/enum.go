package ast

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Enum represents an enum declaration in the schema.
type Enum struct {
	Pos           lexer.Position
	Documentation *CommentBlock `@@?`
	Keyword       string        `@"enum"`
	Name          *Identifier   `@@`
	Values        []*EnumValue  `"{" @@* "}"`
}

// GetName returns the enum name.
func (e *Enum) GetName() string {
	if e.Name == nil {
		return ""
	}
	return e.Name.Name
}

// ValueNames returns the declared value names in order.
func (e *Enum) ValueNames() []string {
	names := make([]string, len(e.Values))
	for i, v := range e.Values {
		names[i] = v.GetName()
	}
	return names
}

// EnumValue represents a single enum member.
type EnumValue struct {
	Pos           lexer.Position
	Documentation *CommentBlock `@@?`
	Name          *FieldName    `@@`
	Attributes    []*Attribute  `@@*`
}

// GetName returns the value name.
func (v *EnumValue) GetName() string {
	if v.Name == nil {
		return ""
	}
	return v.Name.Name
}
