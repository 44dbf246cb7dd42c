package ast

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Entity represents an entity declaration in the schema.
type Entity struct {
	Pos             lexer.Position
	Documentation   *CommentBlock     `@@?`
	Keyword         string            `@"entity"`
	Name            *Identifier       `@@`
	Extends         *Identifier       `("extends" @@)?`
	Fields          []*Field          `"{" @@*`
	BlockAttributes []*BlockAttribute `@@* "}"`
}

// GetName returns the entity name.
func (e *Entity) GetName() string {
	if e.Name == nil {
		return ""
	}
	return e.Name.Name
}

// ExtendsName returns the name of the parent entity, or "" if none.
func (e *Entity) ExtendsName() string {
	if e.Extends == nil {
		return ""
	}
	return e.Extends.Name
}

// GetDocumentation returns the entity documentation text.
func (e *Entity) GetDocumentation() string {
	if e.Documentation == nil {
		return ""
	}
	return e.Documentation.GetText()
}

// BlockAttribute returns the block attribute with the given name, or nil.
func (e *Entity) BlockAttribute(name string) *BlockAttribute {
	for _, attr := range e.BlockAttributes {
		if attr.GetName() == name {
			return attr
		}
	}
	return nil
}

// IsAbstract reports whether the entity carries @@abstract.
func (e *Entity) IsAbstract() bool {
	return e.BlockAttribute("abstract") != nil
}

// TableName returns the mapped table name from @@map, or "" if unmapped.
func (e *Entity) TableName() string {
	attr := e.BlockAttribute("map")
	if attr == nil || attr.Arguments == nil || len(attr.Arguments.Arguments) == 0 {
		return ""
	}
	if s, ok := attr.Arguments.Arguments[0].Value.AsStringValue(); ok {
		return s.GetValue()
	}
	return ""
}

// Field returns the field with the given name, or nil.
func (e *Entity) Field(name string) *Field {
	for _, f := range e.Fields {
		if f.GetName() == name {
			return f
		}
	}
	return nil
}
