// Package esl provides a parser for the entity schema language, the
// declarative format entities are defined in before DTO derivation.
package esl

import (
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/overzetten/overzetten/esl/ast"
)

// RawSchema is the raw parse tree matching the grammar. It is converted to
// ast.Schema after parsing.
type RawSchema struct {
	Pos   lexer.Position
	Items []*TopLevelItem `@@*`
}

// TopLevelItem is a union of the possible top-level declarations.
type TopLevelItem struct {
	Pos    lexer.Position
	Entity *ast.Entity `@@`
	Enum   *ast.Enum   `| @@`
}

// parser is the participle parser instance.
var parser = participle.MustBuild[RawSchema](
	participle.Lexer(Lexer),
	participle.Elide("Whitespace", "Newline", "Comment"),
	participle.Unquote("String"),
	participle.UseLookahead(10),
	participle.Union[ast.Expression](
		&ast.FunctionCall{},
		&ast.ArrayExpression{},
		&ast.StringValue{},
		&ast.NumericValue{},
		&ast.ConstantValue{},
	),
)

// ParseSchema parses an entity schema from an io.Reader.
func ParseSchema(filename string, r io.Reader) (*ast.Schema, error) {
	raw, err := parser.Parse(filename, r)
	if err != nil {
		return nil, err
	}
	return convertRawSchema(raw), nil
}

// ParseSchemaString parses an entity schema from a string.
func ParseSchemaString(filename, input string) (*ast.Schema, error) {
	return ParseSchema(filename, strings.NewReader(input))
}

// MustParseSchemaString parses an entity schema from a string, panicking on error.
func MustParseSchemaString(filename, input string) *ast.Schema {
	schema, err := ParseSchemaString(filename, input)
	if err != nil {
		panic(err)
	}
	return schema
}

// convertRawSchema converts the raw parse tree to the AST and fixes up
// field arities from the parsed suffixes.
func convertRawSchema(raw *RawSchema) *ast.Schema {
	schema := &ast.Schema{}
	for _, item := range raw.Items {
		switch {
		case item.Entity != nil:
			for _, field := range item.Entity.Fields {
				field.Arity = fieldArity(field)
			}
			schema.Entities = append(schema.Entities, item.Entity)
		case item.Enum != nil:
			schema.Enums = append(schema.Enums, item.Enum)
		}
	}
	return schema
}

func fieldArity(field *ast.Field) ast.FieldArity {
	switch {
	case field.ListSuffix != nil:
		return ast.FieldArityList
	case field.OptionalMark != nil:
		return ast.FieldArityOptional
	default:
		return ast.FieldArityRequired
	}
}
