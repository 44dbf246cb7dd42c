// Package generator generates Go DTO code and JSON Schema documents from
// entity schemas.
package generator

import (
	"fmt"
	"sort"

	"github.com/overzetten/overzetten/dto"
	"github.com/overzetten/overzetten/entity"
	"github.com/overzetten/overzetten/generator/codegen"
	"github.com/overzetten/overzetten/internal/debug"
)

// Target pairs an entity with the derivation policy for one output DTO.
type Target struct {
	Entity string
	Config dto.Config
}

// Generator derives the configured DTO schemas and renders them
type Generator struct {
	registry *dto.Registry
	targets  []Target
	pkg      string
}

// NewGenerator creates a new code generator
func NewGenerator(set *entity.Set, targets []Target, packageName string) *Generator {
	debug.Debug("Creating new generator", "targets", len(targets), "package", packageName)
	if packageName == "" {
		packageName = "generated"
	}
	return &Generator{
		registry: dto.NewRegistry(set),
		targets:  targets,
		pkg:      packageName,
	}
}

// Registry exposes the generator's schema registry
func (g *Generator) Registry() *dto.Registry {
	return g.registry
}

// Generate derives every target schema and writes dtos.go plus one JSON
// Schema document per DTO into outputDir.
func (g *Generator) Generate(outputDir string) error {
	debug.Debug("Starting generation", "outputDir", outputDir)

	if err := g.validateTargets(); err != nil {
		debug.Error("Target validation failed", "error", err)
		return fmt.Errorf("target validation failed: %w", err)
	}

	schemas := make([]*dto.Schema, 0, len(g.targets))
	for _, target := range g.targets {
		schema, err := g.registry.Derive(target.Entity, target.Config)
		if err != nil {
			debug.Error("Derivation failed", "entity", target.Entity, "error", err)
			return fmt.Errorf("failed to derive %q: %w", target.Entity, err)
		}
		schemas = append(schemas, schema)
	}
	debug.Debug("Schemas derived", "count", len(schemas))

	// Circular entity graphs leave forward references behind; resolve them
	// now that every schema exists.
	if err := g.registry.RebuildAll(); err != nil {
		debug.Error("Forward reference resolution failed", "error", err)
		return fmt.Errorf("failed to resolve references: %w", err)
	}

	// Structs cover every synthesized schema, not just the targets: a DTO
	// with relationships references the nested schemas as Go types.
	all := g.registry.Schemas()
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	structs := codegen.GenerateStructs(all)
	if len(structs) == 0 {
		debug.Error("No schemas to generate")
		return fmt.Errorf("no schemas to generate")
	}

	debug.Debug("Generating dtos.go file", "outputDir", outputDir)
	if err := codegen.GenerateStructsFile(structs, g.pkg, outputDir); err != nil {
		debug.Error("Failed to generate structs file", "error", err)
		return fmt.Errorf("failed to generate structs: %w", err)
	}
	debug.Debug("dtos.go generated successfully")

	debug.Debug("Exporting JSON Schema documents", "outputDir", outputDir)
	if err := codegen.GenerateSchemaFiles(dedupe(schemas), outputDir); err != nil {
		debug.Error("Failed to export schema documents", "error", err)
		return fmt.Errorf("failed to export schemas: %w", err)
	}
	debug.Info("Generation completed", "outputDir", outputDir, "schemas", len(structs))

	return nil
}

// validateTargets performs basic validation on the configured targets
func (g *Generator) validateTargets() error {
	if len(g.targets) == 0 {
		return fmt.Errorf("no targets configured")
	}
	seen := make(map[string]string, len(g.targets))
	for _, target := range g.targets {
		if target.Entity == "" {
			return fmt.Errorf("target with empty entity name")
		}
		name := target.Config.SchemaName(target.Entity)
		if prev, ok := seen[name]; ok && prev != target.Entity {
			return fmt.Errorf("schema name %q produced by both %q and %q", name, prev, target.Entity)
		}
		seen[name] = target.Entity
	}
	return nil
}

// dedupe drops repeated schema instances while keeping target order. The
// registry returns the same instance for identical (entity, config) pairs.
func dedupe(schemas []*dto.Schema) []*dto.Schema {
	seen := make(map[*dto.Schema]bool, len(schemas))
	out := schemas[:0:0]
	for _, s := range schemas {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
