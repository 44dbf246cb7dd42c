package commands

import (
	"fmt"
	"os"

	"github.com/overzetten/overzetten/entity"
	"github.com/overzetten/overzetten/esl"
)

// getSchemaPath returns the schema path using consistent logic:
// 1. Use explicit flag value if set
// 2. Use first argument if provided
// 3. Fall back to the configured default
func getSchemaPath(flagValue string, args []string, configured string) string {
	if flagValue != "" {
		return flagValue
	}
	if len(args) > 0 {
		return args[0]
	}
	if configured != "" {
		return configured
	}
	return "schema.esl"
}

// loadEntitySet parses a schema file and introspects it into an entity set
func loadEntitySet(schemaPath string) (*entity.Set, error) {
	if _, err := os.Stat(schemaPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("schema file not found: %s", schemaPath)
	}

	f, err := os.Open(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	defer f.Close()

	schema, err := esl.ParseSchema(schemaPath, f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	set, err := entity.FromSchema(schema)
	if err != nil {
		return nil, fmt.Errorf("schema introspection failed: %w", err)
	}
	return set, nil
}
