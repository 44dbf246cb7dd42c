// Package codegen renders synthesized DTO schemas into Go source and JSON
// Schema documents.
package codegen

import (
	"fmt"
	"go/ast"
	"go/token"
	"path/filepath"
	"strings"

	"github.com/overzetten/overzetten/dto"
)

// StructInfo represents one schema prepared for code generation
type StructInfo struct {
	Name   string
	Entity string
	Doc    string
	Fields []FieldInfo
}

// FieldInfo represents one struct field
type FieldInfo struct {
	Name     string // wire name, as declared on the schema
	GoName   string
	GoType   string
	Tags     string
	Required bool
}

// GenerateStructs prepares schemas for code generation. Schemas are expected
// to have been rebuilt; unresolved references render as their bare name.
func GenerateStructs(schemas []*dto.Schema) []StructInfo {
	structs := make([]StructInfo, 0, len(schemas))
	for _, schema := range schemas {
		info := StructInfo{
			Name:   schema.Name,
			Entity: schema.Entity,
			Doc:    schema.Doc,
			Fields: make([]FieldInfo, 0, len(schema.Fields)),
		}
		for i := range schema.Fields {
			field := &schema.Fields[i]
			info.Fields = append(info.Fields, FieldInfo{
				Name:     field.Name,
				GoName:   toGoName(field.Name),
				GoType:   field.Type.GoType(),
				Tags:     fieldTag(field),
				Required: field.Default.IsRequired(),
			})
		}
		structs = append(structs, info)
	}
	return structs
}

// fieldTag builds the struct tag for a field. Fields with defaults may be
// absent on the wire.
func fieldTag(field *dto.Field) string {
	if field.Default.IsRequired() {
		return fmt.Sprintf("`json:%q`", field.Name)
	}
	return fmt.Sprintf("`json:%q`", field.Name+",omitempty")
}

// toGoName converts a wire name to an exported Go identifier
func toGoName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})
	var b strings.Builder
	for _, part := range parts {
		if part == "id" {
			b.WriteString("ID")
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// GenerateStructsFile generates the dtos.go file using AST
func GenerateStructsFile(structs []StructInfo, packageName, outputDir string) error {
	file := newFile(packageName)

	// The comment needs a position before the package clause, and writeASTFile
	// registers a matching line break, so go/format prints it as a header
	// instead of splicing it into the package clause.
	const header = "// Code generated by overzetten. DO NOT EDIT."
	file.Comments = []*ast.CommentGroup{
		{
			List: []*ast.Comment{
				{Slash: token.Pos(1), Text: header},
			},
		},
	}
	file.Package = token.Pos(len(header) + 2)

	// Check for time.Time usage
	hasTime := false
	for _, s := range structs {
		for _, f := range s.Fields {
			if strings.Contains(f.GoType, "time.Time") {
				hasTime = true
				break
			}
		}
		if hasTime {
			break
		}
	}
	if hasTime {
		addImports(file, []string{"time"})
	}

	for _, s := range structs {
		fields := make([]*ast.Field, 0, len(s.Fields))
		for _, f := range s.Fields {
			fields = append(fields, newField(f.GoName, parseType(f.GoType), f.Tags))
		}

		doc := s.Doc
		if doc == "" {
			doc = fmt.Sprintf("%s is the transfer shape of the %s entity", s.Name, s.Entity)
		} else {
			doc = fmt.Sprintf("%s: %s", s.Name, doc)
		}
		file.Decls = append(file.Decls, newTypeDecl(s.Name, doc, newStructType(fields)))

		// EntityName method, so callers can trace a DTO back to its source
		recv := &ast.FieldList{
			List: []*ast.Field{
				{
					Type: ast.NewIdent(s.Name),
				},
			},
		}
		results := &ast.FieldList{
			List: []*ast.Field{
				{
					Type: ast.NewIdent("string"),
				},
			},
		}
		body := newBlockStmt(
			newReturnStmt(newStringLit(s.Entity)),
		)
		method := newFuncDecl("EntityName", fmt.Sprintf("EntityName returns the source entity of %s", s.Name), recv, &ast.FieldList{}, results, body)
		file.Decls = append(file.Decls, method)
	}

	return writeASTFile(file, filepath.Join(outputDir, "dtos.go"))
}

// GenerateSchemaFiles exports one JSON Schema document per schema
func GenerateSchemaFiles(schemas []*dto.Schema, outputDir string) error {
	for _, schema := range schemas {
		name := strings.ToLower(schema.Name) + ".schema.json"
		if err := writeJSONFile(schema.JSONSchema(), filepath.Join(outputDir, name)); err != nil {
			return fmt.Errorf("failed to write schema %q: %w", schema.Name, err)
		}
	}
	return nil
}
