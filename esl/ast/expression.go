package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Expression represents a value expression in the schema, such as an
// attribute argument. It is a closed union over the concrete value types.
type Expression interface {
	isExpression()
	Span() lexer.Position
	String() string

	AsStringValue() (*StringValue, bool)
	AsNumericValue() (*NumericValue, bool)
	AsConstantValue() (*ConstantValue, bool)
	AsFunction() (*FunctionCall, bool)
	AsArray() (*ArrayExpression, bool)
	AsBooleanValue() (bool, bool)
}

// StringValue represents a quoted string literal.
type StringValue struct {
	Pos   lexer.Position
	Value string `@String`
}

func (s *StringValue) isExpression() {}

// Span returns the source position.
func (s *StringValue) Span() lexer.Position { return s.Pos }

// String returns the quoted source representation.
func (s *StringValue) String() string { return fmt.Sprintf("%q", s.Value) }

// GetValue returns the unquoted string value.
func (s *StringValue) GetValue() string { return s.Value }

// NumericValue represents an integer or float literal.
type NumericValue struct {
	Pos   lexer.Position
	Value string `@Number`
}

func (n *NumericValue) isExpression() {}

// Span returns the source position.
func (n *NumericValue) Span() lexer.Position { return n.Pos }

// String returns the source representation.
func (n *NumericValue) String() string { return n.Value }

// AsInt returns the value as an int64 if it parses as one.
func (n *NumericValue) AsInt() (int64, bool) {
	v, err := strconv.ParseInt(n.Value, 10, 64)
	return v, err == nil
}

// AsFloat returns the value as a float64.
func (n *NumericValue) AsFloat() (float64, bool) {
	v, err := strconv.ParseFloat(n.Value, 64)
	return v, err == nil
}

// ConstantValue represents a bare identifier value (true, false, enum values).
type ConstantValue struct {
	Pos   lexer.Position
	Value string `@Ident`
}

func (c *ConstantValue) isExpression() {}

// Span returns the source position.
func (c *ConstantValue) Span() lexer.Position { return c.Pos }

// String returns the source representation.
func (c *ConstantValue) String() string { return c.Value }

// FunctionCall represents a call expression like autoincrement() or sequence("name").
type FunctionCall struct {
	Pos       lexer.Position
	Name      string         `@Ident`
	Arguments *ArgumentsList `"(" @@? ")"`
}

func (f *FunctionCall) isExpression() {}

// Span returns the source position.
func (f *FunctionCall) Span() lexer.Position { return f.Pos }

// String returns the source representation.
func (f *FunctionCall) String() string {
	args := ""
	if f.Arguments != nil {
		args = f.Arguments.String()
	}
	return fmt.Sprintf("%s(%s)", f.Name, args)
}

// FirstStringArgument returns the first argument as an unquoted string, if any.
func (f *FunctionCall) FirstStringArgument() (string, bool) {
	if f.Arguments == nil || len(f.Arguments.Arguments) == 0 {
		return "", false
	}
	if s, ok := f.Arguments.Arguments[0].Value.AsStringValue(); ok {
		return s.GetValue(), true
	}
	return "", false
}

// ArrayExpression represents an array literal like [1, 2, 3].
type ArrayExpression struct {
	Pos      lexer.Position
	Elements []Expression `"[" (@@ ("," @@)*)? "]"`
}

func (a *ArrayExpression) isExpression() {}

// Span returns the source position.
func (a *ArrayExpression) Span() lexer.Position { return a.Pos }

// String returns the source representation.
func (a *ArrayExpression) String() string {
	parts := make([]string, len(a.Elements))
	for i, elem := range a.Elements {
		parts[i] = elem.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// AsStringValue implementations.
func (s *StringValue) AsStringValue() (*StringValue, bool)     { return s, true }
func (n *NumericValue) AsStringValue() (*StringValue, bool)    { return nil, false }
func (c *ConstantValue) AsStringValue() (*StringValue, bool)   { return nil, false }
func (f *FunctionCall) AsStringValue() (*StringValue, bool)    { return nil, false }
func (a *ArrayExpression) AsStringValue() (*StringValue, bool) { return nil, false }

// AsNumericValue implementations.
func (s *StringValue) AsNumericValue() (*NumericValue, bool)     { return nil, false }
func (n *NumericValue) AsNumericValue() (*NumericValue, bool)    { return n, true }
func (c *ConstantValue) AsNumericValue() (*NumericValue, bool)   { return nil, false }
func (f *FunctionCall) AsNumericValue() (*NumericValue, bool)    { return nil, false }
func (a *ArrayExpression) AsNumericValue() (*NumericValue, bool) { return nil, false }

// AsConstantValue implementations.
func (s *StringValue) AsConstantValue() (*ConstantValue, bool)     { return nil, false }
func (n *NumericValue) AsConstantValue() (*ConstantValue, bool)    { return nil, false }
func (c *ConstantValue) AsConstantValue() (*ConstantValue, bool)   { return c, true }
func (f *FunctionCall) AsConstantValue() (*ConstantValue, bool)    { return nil, false }
func (a *ArrayExpression) AsConstantValue() (*ConstantValue, bool) { return nil, false }

// AsFunction implementations.
func (s *StringValue) AsFunction() (*FunctionCall, bool)     { return nil, false }
func (n *NumericValue) AsFunction() (*FunctionCall, bool)    { return nil, false }
func (c *ConstantValue) AsFunction() (*FunctionCall, bool)   { return nil, false }
func (f *FunctionCall) AsFunction() (*FunctionCall, bool)    { return f, true }
func (a *ArrayExpression) AsFunction() (*FunctionCall, bool) { return nil, false }

// AsArray implementations.
func (s *StringValue) AsArray() (*ArrayExpression, bool)     { return nil, false }
func (n *NumericValue) AsArray() (*ArrayExpression, bool)    { return nil, false }
func (c *ConstantValue) AsArray() (*ArrayExpression, bool)   { return nil, false }
func (f *FunctionCall) AsArray() (*ArrayExpression, bool)    { return nil, false }
func (a *ArrayExpression) AsArray() (*ArrayExpression, bool) { return a, true }

// AsBooleanValue returns the boolean value if the expression is the constant
// "true" or "false".
func (c *ConstantValue) AsBooleanValue() (bool, bool) {
	switch c.Value {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

func (s *StringValue) AsBooleanValue() (bool, bool)     { return false, false }
func (n *NumericValue) AsBooleanValue() (bool, bool)    { return false, false }
func (f *FunctionCall) AsBooleanValue() (bool, bool)    { return false, false }
func (a *ArrayExpression) AsBooleanValue() (bool, bool) { return false, false }

// LiteralValue converts a literal expression (string, number, boolean
// constant) to its Go value. Function calls and arrays return nil, false.
func LiteralValue(expr Expression) (any, bool) {
	if expr == nil {
		return nil, false
	}
	if s, ok := expr.AsStringValue(); ok {
		return s.GetValue(), true
	}
	if n, ok := expr.AsNumericValue(); ok {
		if i, ok := n.AsInt(); ok {
			return i, true
		}
		if f, ok := n.AsFloat(); ok {
			return f, true
		}
		return nil, false
	}
	if b, ok := expr.AsBooleanValue(); ok {
		return b, true
	}
	if c, ok := expr.AsConstantValue(); ok {
		return c.Value, true
	}
	return nil, false
}
