package config

import (
	"testing"

	"github.com/overzetten/overzetten/dto"
	"github.com/overzetten/overzetten/entity"
	"github.com/overzetten/overzetten/esl"
)

const testSchema = `
entity User {
  id       Int     @id @default(autoincrement())
  name     String
  fullname String?
}

entity Base {
  created_at DateTime @default(now())

  @@abstract
}
`

func testSet(t *testing.T) *entity.Set {
	t.Helper()
	schema, err := esl.ParseSchemaString("test.esl", testSchema)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	set, err := entity.FromSchema(schema)
	if err != nil {
		t.Fatalf("introspection failed: %v", err)
	}
	return set
}

func TestTargetsDefaultToAllConcreteEntities(t *testing.T) {
	cfg := &Config{}
	targets, err := cfg.Targets(testSet(t))
	if err != nil {
		t.Fatalf("Targets failed: %v", err)
	}
	if len(targets) != 1 || targets[0].Entity != "User" {
		t.Errorf("Expected only the concrete User entity, got %+v", targets)
	}
}

func TestTargetsFromBlocks(t *testing.T) {
	cfg := &Config{
		DTOs: []DTOBlock{
			{
				Entity:  "User",
				Name:    "ApiUser",
				Exclude: []string{"id"},
				Mapped:  map[string]string{"fullname": "String"},
				Defaults: map[string]any{
					"name": "anonymous",
				},
				Relationships: true,
				Deep:          true,
				AllowExtra:    true,
			},
		},
	}

	targets, err := cfg.Targets(testSet(t))
	if err != nil {
		t.Fatalf("Targets failed: %v", err)
	}
	if len(targets) != 1 {
		t.Fatalf("Expected one target, got %d", len(targets))
	}

	target := targets[0]
	if target.Entity != "User" || target.Config.Name != "ApiUser" {
		t.Errorf("Target mis-built: %+v", target)
	}
	if !target.Config.Options.AllowExtra {
		t.Errorf("AllowExtra not carried")
	}
	if !target.Config.IncludeRelationships || !target.Config.DeepRelationships {
		t.Errorf("Relationship flags not carried: %+v", target.Config)
	}

	override, ok := target.Config.Mapped["fullname"]
	if !ok || override.Type == nil {
		t.Fatalf("Mapped type expression not converted: %+v", target.Config.Mapped)
	}
	if override.Type.Kind != dto.KindString || override.Type.IsOptional() {
		t.Errorf("Expected required String override, got %s", override.Type)
	}

	if target.Config.Defaults["name"] != "anonymous" {
		t.Errorf("Default override not carried: %v", target.Config.Defaults)
	}
}

func TestTargetsInvalidMappedExpression(t *testing.T) {
	cfg := &Config{
		DTOs: []DTOBlock{
			{Entity: "User", Mapped: map[string]string{"name": "???"}},
		},
	}
	if _, err := cfg.Targets(testSet(t)); err == nil {
		t.Errorf("Expected error for invalid type expression")
	}
}
