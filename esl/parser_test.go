package esl

import (
	"testing"

	"github.com/overzetten/overzetten/esl/ast"
)

func TestParseBasicEntity(t *testing.T) {
	input := `
entity User {
  id       Int     @id @default(autoincrement())
  name     String
  fullname String?
  addresses Address[]
}
`
	schema, err := ParseSchemaString("test.esl", input)
	if err != nil {
		t.Fatalf("Failed to parse schema: %v", err)
	}

	if len(schema.Entities) != 1 {
		t.Fatalf("Expected 1 entity, got %d", len(schema.Entities))
	}

	entity := schema.Entities[0]
	if entity.GetName() != "User" {
		t.Errorf("Expected entity name 'User', got '%s'", entity.GetName())
	}

	if len(entity.Fields) != 4 {
		t.Fatalf("Expected 4 fields, got %d", len(entity.Fields))
	}

	id := entity.Fields[0]
	if !id.HasAttribute("id") {
		t.Errorf("Expected id field to carry @id")
	}
	def := id.Attribute("default")
	if def == nil {
		t.Fatalf("Expected id field to carry @default")
	}
	fn, ok := def.FirstArgument().AsFunction()
	if !ok || fn.Name != "autoincrement" {
		t.Errorf("Expected @default(autoincrement()), got %v", def.String())
	}

	if entity.Fields[2].Arity != ast.FieldArityOptional {
		t.Errorf("Expected fullname to be optional, got %v", entity.Fields[2].Arity)
	}
	if entity.Fields[3].Arity != ast.FieldArityList {
		t.Errorf("Expected addresses to be a list, got %v", entity.Fields[3].Arity)
	}
}

func TestParseEnum(t *testing.T) {
	input := `
enum Role {
  USER
  ADMIN
  MODERATOR
}
`
	schema, err := ParseSchemaString("test.esl", input)
	if err != nil {
		t.Fatalf("Failed to parse schema: %v", err)
	}

	if len(schema.Enums) != 1 {
		t.Fatalf("Expected 1 enum, got %d", len(schema.Enums))
	}

	enum := schema.Enums[0]
	if enum.GetName() != "Role" {
		t.Errorf("Expected enum name 'Role', got '%s'", enum.GetName())
	}
	names := enum.ValueNames()
	if len(names) != 3 || names[0] != "USER" || names[2] != "MODERATOR" {
		t.Errorf("Unexpected enum values: %v", names)
	}
}

func TestParseExtends(t *testing.T) {
	input := `
entity Person {
  id   Int    @id
  name String
}

entity Employee extends Person {
  salary Float
}
`
	schema, err := ParseSchemaString("test.esl", input)
	if err != nil {
		t.Fatalf("Failed to parse schema: %v", err)
	}

	employee := schema.Entity("Employee")
	if employee == nil {
		t.Fatalf("Expected Employee entity")
	}
	if employee.ExtendsName() != "Person" {
		t.Errorf("Expected Employee to extend Person, got '%s'", employee.ExtendsName())
	}
}

func TestParseBlockAttributes(t *testing.T) {
	input := `
entity User {
  id Int @id

  @@map("users")
}

entity Base {
  created DateTime @default(now())

  @@abstract
}
`
	schema, err := ParseSchemaString("test.esl", input)
	if err != nil {
		t.Fatalf("Failed to parse schema: %v", err)
	}

	user := schema.Entity("User")
	if user.TableName() != "users" {
		t.Errorf("Expected table name 'users', got '%s'", user.TableName())
	}
	if user.IsAbstract() {
		t.Errorf("User should not be abstract")
	}

	base := schema.Entity("Base")
	if !base.IsAbstract() {
		t.Errorf("Expected Base to be abstract")
	}
}

func TestParseSynonymAndComputed(t *testing.T) {
	input := `
entity User {
  id        Int    @id
  name      String
  username  String @synonym("name")
  full_name String @computed("name || ' ' || fullname")
}
`
	schema, err := ParseSchemaString("test.esl", input)
	if err != nil {
		t.Fatalf("Failed to parse schema: %v", err)
	}

	user := schema.Entity("User")
	syn := user.Field("username").Attribute("synonym")
	if syn == nil {
		t.Fatalf("Expected @synonym on username")
	}
	target, ok := syn.FirstArgument().AsStringValue()
	if !ok || target.GetValue() != "name" {
		t.Errorf("Expected synonym target 'name', got %v", syn.String())
	}

	if !user.Field("full_name").HasAttribute("computed") {
		t.Errorf("Expected @computed on full_name")
	}
}

func TestParseDocComments(t *testing.T) {
	input := `
/// A user of the system.
entity User {
  /// Primary identifier.
  id Int @id
}
`
	schema, err := ParseSchemaString("test.esl", input)
	if err != nil {
		t.Fatalf("Failed to parse schema: %v", err)
	}

	user := schema.Entity("User")
	if user.GetDocumentation() != "A user of the system." {
		t.Errorf("Unexpected entity doc: %q", user.GetDocumentation())
	}
	if user.Fields[0].GetDocumentation() != "Primary identifier." {
		t.Errorf("Unexpected field doc: %q", user.Fields[0].GetDocumentation())
	}
}

func TestParseServerDefault(t *testing.T) {
	input := `
entity Event {
  id         Int      @id
  created_at DateTime @default(dbgenerated("CURRENT_TIMESTAMP"))
}
`
	schema, err := ParseSchemaString("test.esl", input)
	if err != nil {
		t.Fatalf("Failed to parse schema: %v", err)
	}

	def := schema.Entity("Event").Field("created_at").Attribute("default")
	fn, ok := def.FirstArgument().AsFunction()
	if !ok || fn.Name != "dbgenerated" {
		t.Fatalf("Expected dbgenerated default, got %v", def.String())
	}
	sql, ok := fn.FirstStringArgument()
	if !ok || sql != "CURRENT_TIMESTAMP" {
		t.Errorf("Expected CURRENT_TIMESTAMP, got %q", sql)
	}
}

func TestParseInvalidSchema(t *testing.T) {
	_, err := ParseSchemaString("bad.esl", `entity { id Int }`)
	if err == nil {
		t.Fatalf("Expected parse error for entity without a name")
	}
}

func TestParseTypeExpr(t *testing.T) {
	cases := []struct {
		input    string
		name     string
		list     bool
		optional bool
	}{
		{"String", "String", false, false},
		{"String?", "String", false, true},
		{"Address[]", "Address", true, false},
		{" Int? ", "Int", false, true},
	}
	for _, tc := range cases {
		expr, err := ParseTypeExpr(tc.input)
		if err != nil {
			t.Fatalf("ParseTypeExpr(%q) failed: %v", tc.input, err)
		}
		if expr.Name != tc.name || expr.List != tc.list || expr.Optional != tc.optional {
			t.Errorf("ParseTypeExpr(%q) = %+v", tc.input, expr)
		}
	}

	if _, err := ParseTypeExpr(""); err == nil {
		t.Errorf("Expected error for empty type expression")
	}
}
