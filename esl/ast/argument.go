package ast

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// ArgumentsList represents a parenthesized list of arguments.
type ArgumentsList struct {
	Pos       lexer.Position
	Arguments []*Argument `(@@ ("," @@)*)? ","?`
}

// String returns the source representation of the arguments.
func (a *ArgumentsList) String() string {
	if a == nil || len(a.Arguments) == 0 {
		return ""
	}
	parts := make([]string, len(a.Arguments))
	for i, arg := range a.Arguments {
		parts[i] = arg.String()
	}
	return strings.Join(parts, ", ")
}

// Argument represents a single named or positional argument.
type Argument struct {
	Pos   lexer.Position
	Name  *Identifier `(@@ ":")?`
	Value Expression  `@@`
}

// String returns the source representation of the argument.
func (a *Argument) String() string {
	if a.Name != nil {
		return fmt.Sprintf("%s: %s", a.Name.Name, a.Value.String())
	}
	return a.Value.String()
}

// IsNamed returns true if this is a named argument.
func (a *Argument) IsNamed() bool {
	return a.Name != nil
}

// GetName returns the argument name or "" if positional.
func (a *Argument) GetName() string {
	if a.Name == nil {
		return ""
	}
	return a.Name.Name
}
