package ast

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Attribute represents a field-level attribute (@attribute).
type Attribute struct {
	Pos       lexer.Position
	Name      *Identifier    `"@" @@`
	Arguments *ArgumentsList `("(" @@ ")")?`
}

// String returns the source representation of the attribute.
func (a *Attribute) String() string {
	args := ""
	if a.Arguments != nil && len(a.Arguments.Arguments) > 0 {
		args = "(" + a.Arguments.String() + ")"
	}
	return "@" + a.GetName() + args
}

// GetName returns the attribute name.
func (a *Attribute) GetName() string {
	if a.Name == nil {
		return ""
	}
	return a.Name.Name
}

// FirstArgument returns the first argument value, or nil if there are none.
func (a *Attribute) FirstArgument() Expression {
	if a.Arguments == nil || len(a.Arguments.Arguments) == 0 {
		return nil
	}
	return a.Arguments.Arguments[0].Value
}

// NamedArgument returns the value of the named argument, or nil.
func (a *Attribute) NamedArgument(name string) Expression {
	if a.Arguments == nil {
		return nil
	}
	for _, arg := range a.Arguments.Arguments {
		if arg.GetName() == name {
			return arg.Value
		}
	}
	return nil
}

// BlockAttribute represents an entity-level attribute (@@attribute).
type BlockAttribute struct {
	Pos       lexer.Position
	Name      *Identifier    `"@@" @@`
	Arguments *ArgumentsList `("(" @@ ")")?`
}

// String returns the source representation of the block attribute.
func (b *BlockAttribute) String() string {
	args := ""
	if b.Arguments != nil && len(b.Arguments.Arguments) > 0 {
		args = "(" + b.Arguments.String() + ")"
	}
	return "@@" + b.GetName() + args
}

// GetName returns the block attribute name.
func (b *BlockAttribute) GetName() string {
	if b.Name == nil {
		return ""
	}
	return b.Name.Name
}
