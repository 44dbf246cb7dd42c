package codegen

import (
	"encoding/json"
	"fmt"
	"go/ast"
	"go/format"
	"go/token"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/overzetten/overzetten/internal/debug"
)

// Fs is the filesystem generated files are written to. Tests swap in a
// memory-backed filesystem.
var Fs = afero.NewOsFs()

// AST helper functions for building Go AST nodes

// newFile creates a new AST file with package declaration
func newFile(packageName string) *ast.File {
	return &ast.File{
		Name:  ast.NewIdent(packageName),
		Decls: []ast.Decl{},
	}
}

func newImportSpec(path string) *ast.ImportSpec {
	return &ast.ImportSpec{
		Path: &ast.BasicLit{
			Kind:  token.STRING,
			Value: fmt.Sprintf("%q", path),
		},
	}
}

// addImports adds an import declaration to the file
func addImports(file *ast.File, imports []string) {
	if len(imports) == 0 {
		return
	}
	specs := make([]ast.Spec, len(imports))
	for i, imp := range imports {
		specs[i] = newImportSpec(imp)
	}
	file.Decls = append(file.Decls, &ast.GenDecl{
		Tok:   token.IMPORT,
		Specs: specs,
	})
}

// newStructType creates a struct type from fields
func newStructType(fields []*ast.Field) *ast.StructType {
	return &ast.StructType{
		Fields: &ast.FieldList{
			List: fields,
		},
	}
}

// newField creates a struct field with an optional tag
func newField(name string, typeExpr ast.Expr, tag string) *ast.Field {
	field := &ast.Field{
		Names: []*ast.Ident{ast.NewIdent(name)},
		Type:  typeExpr,
	}
	if tag != "" {
		field.Tag = &ast.BasicLit{
			Kind:  token.STRING,
			Value: tag,
		}
	}
	return field
}

// newTypeDecl creates a type declaration with an optional doc comment
func newTypeDecl(name string, doc string, typeExpr ast.Expr) *ast.GenDecl {
	decl := &ast.GenDecl{
		Tok: token.TYPE,
		Specs: []ast.Spec{
			&ast.TypeSpec{
				Name: ast.NewIdent(name),
				Type: typeExpr,
			},
		},
	}
	if doc != "" {
		decl.Doc = &ast.CommentGroup{
			List: []*ast.Comment{
				{Text: "// " + doc},
			},
		}
	}
	return decl
}

// newFuncDecl creates a function declaration with an optional doc comment
func newFuncDecl(name string, doc string, recv *ast.FieldList, params *ast.FieldList, results *ast.FieldList, body *ast.BlockStmt) *ast.FuncDecl {
	decl := &ast.FuncDecl{
		Name: ast.NewIdent(name),
		Type: &ast.FuncType{
			Params:  params,
			Results: results,
		},
		Body: body,
	}
	if recv != nil {
		decl.Recv = recv
	}
	if doc != "" {
		decl.Doc = &ast.CommentGroup{
			List: []*ast.Comment{
				{Text: "// " + doc},
			},
		}
	}
	return decl
}

func newReturnStmt(exprs ...ast.Expr) *ast.ReturnStmt {
	return &ast.ReturnStmt{
		Results: exprs,
	}
}

func newStringLit(s string) *ast.BasicLit {
	return &ast.BasicLit{
		Kind:  token.STRING,
		Value: fmt.Sprintf("%q", s),
	}
}

func newBlockStmt(stmts ...ast.Stmt) *ast.BlockStmt {
	return &ast.BlockStmt{
		List: stmts,
	}
}

// parseType parses a Go type string into an AST expression
func parseType(typeStr string) ast.Expr {
	if strings.HasPrefix(typeStr, "*") {
		return &ast.StarExpr{
			X: parseType(typeStr[1:]),
		}
	}
	if strings.HasPrefix(typeStr, "[]") {
		return &ast.ArrayType{
			Elt: parseType(typeStr[2:]),
		}
	}
	// Qualified types (e.g., "time.Time")
	if strings.Contains(typeStr, ".") {
		parts := strings.Split(typeStr, ".")
		return &ast.SelectorExpr{
			X:   ast.NewIdent(parts[0]),
			Sel: ast.NewIdent(parts[1]),
		}
	}
	return ast.NewIdent(typeStr)
}

// writeASTFile writes an AST file to disk with proper formatting
func writeASTFile(file *ast.File, filePath string) error {
	if err := Fs.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := Fs.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	debug.Debug("Formatting AST", "decl_count", len(file.Decls))
	formatStart := time.Now()
	fset := token.NewFileSet()
	if file.Package > token.Pos(1) {
		// A header comment sits before the package clause; register a file with
		// a line break between them so the printer keeps them on separate lines.
		tf := fset.AddFile(filePath, 1, int(file.Package)+512)
		tf.SetLines([]int{0, int(file.Package) - 1})
	}
	if err := format.Node(f, fset, file); err != nil {
		return fmt.Errorf("failed to format file: %w", err)
	}
	debug.Debug("AST formatted successfully", "elapsed", time.Since(formatStart))

	return nil
}

// writeJSONFile writes an indented JSON document to disk
func writeJSONFile(doc any, filePath string) error {
	if err := Fs.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	raw = append(raw, '\n')

	if err := afero.WriteFile(Fs, filePath, raw, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
