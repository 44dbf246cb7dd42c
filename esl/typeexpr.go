package esl

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
)

// TypeExpr is a parsed standalone type expression such as "String",
// "String?" or "Address[]". It is the syntax configuration files use for
// field type overrides.
type TypeExpr struct {
	Name     string
	List     bool
	Optional bool
}

// String returns the source representation of the expression.
func (t *TypeExpr) String() string {
	s := t.Name
	if t.List {
		s += "[]"
	}
	if t.Optional {
		s += "?"
	}
	return s
}

type rawTypeExpr struct {
	Name         string  `(@Ident | @Keyword)`
	ListSuffix   *string `@("[" "]")?`
	OptionalMark *string `@"?"?`
}

var typeExprParser = participle.MustBuild[rawTypeExpr](
	participle.Lexer(Lexer),
	participle.Elide("Whitespace", "Newline", "Comment"),
)

// ParseTypeExpr parses a standalone type expression.
func ParseTypeExpr(input string) (*TypeExpr, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty type expression")
	}
	raw, err := typeExprParser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("invalid type expression %q: %w", input, err)
	}
	return &TypeExpr{
		Name:     raw.Name,
		List:     raw.ListSuffix != nil,
		Optional: raw.OptionalMark != nil,
	}, nil
}
