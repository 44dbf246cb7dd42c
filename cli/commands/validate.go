package commands

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/overzetten/overzetten/cli/internal/config"
	"github.com/overzetten/overzetten/cli/internal/ui"
	"github.com/overzetten/overzetten/dto"
)

var validateCmd = &cobra.Command{
	Use:   "validate [schema-path]",
	Short: "Validate an entity schema and its DTO configuration",
	Long: `Validate an entity schema file for syntax and semantic errors.

This command will:
- Parse the schema file
- Introspect entities, inheritance and relationships
- Dry-run every configured DTO derivation
- Display validation results`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

var validateSchemaPath string

func init() {
	validateCmd.Flags().StringVarP(&validateSchemaPath, "schema", "s", "", "Path to schema file")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	schemaPath := getSchemaPath(validateSchemaPath, args, cfg.SchemaPath)

	ui.PrintHeader("Overzetten", "Validate Schema")

	set, err := loadEntitySet(schemaPath)
	if err != nil {
		ui.PrintError("Schema validation failed:")
		return err
	}

	// Dry-run the configured derivations so policy errors (unknown mapped
	// attributes, abstract targets) surface here, not at generate time.
	targets, err := cfg.Targets(set)
	if err != nil {
		ui.PrintError("DTO configuration invalid:")
		return err
	}
	registry := dto.NewRegistry(set)
	for _, target := range targets {
		if _, err := registry.Derive(target.Entity, target.Config); err != nil {
			ui.PrintError("DTO derivation failed:")
			return fmt.Errorf("dto for %q: %w", target.Entity, err)
		}
	}
	if err := registry.RebuildAll(); err != nil {
		ui.PrintError("DTO derivation failed:")
		return err
	}

	absPath, _ := filepath.Abs(schemaPath)
	ui.PrintSuccess("Schema is valid: %s", absPath)

	fmt.Println()
	ui.PrintSection("Schema Summary")
	ui.PrintList([]string{
		fmt.Sprintf("%d entity(ies)", len(set.EntityNames())),
		fmt.Sprintf("%d DTO(s) configured", len(targets)),
	})

	fmt.Println()
	ui.PrintSection("Entities")
	rows := make([][]string, 0, len(set.EntityNames()))
	for _, name := range set.EntityNames() {
		ent, _ := set.Entity(name)
		kind := "entity"
		if ent.Abstract {
			kind = "abstract"
		}
		rows = append(rows, []string{
			name,
			kind,
			strconv.Itoa(len(ent.Columns)),
			strconv.Itoa(len(ent.Relationships)),
		})
	}
	ui.PrintTable([]string{"Name", "Kind", "Columns", "Relationships"}, rows)

	return nil
}
