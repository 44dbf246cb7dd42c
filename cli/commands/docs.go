package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/overzetten/overzetten/cli/internal/ui"
)

var docsCmd = &cobra.Command{
	Use:   "docs [file]",
	Short: "Render project documentation in the terminal",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDocs,
}

func init() {
	rootCmd.AddCommand(docsCmd)
}

const usageDoc = `# Overzetten

Derive data-transfer schemas from entity definitions.

## Workflow

1. ` + "`overzetten init`" + ` scaffolds a starter project.
2. Define entities in ` + "`schema.esl`" + `:

    entity User {
      id       Int      @id @default(autoincrement())
      name     String
      fullname String?
    }

3. Describe DTO policies in ` + "`.overzetten.yaml`" + `:

    dtos:
      - entity: User
        exclude: [fullname]
        mapped:
          name: "String"

4. ` + "`overzetten generate`" + ` writes Go structs and JSON Schema documents.

## Policy reference

| Key           | Meaning                                        |
|---------------|------------------------------------------------|
| exclude       | Drop attributes (wins over include and mapped) |
| include       | Keep only the listed attributes                |
| mapped        | Override the target type per attribute         |
| defaults      | Override the default value per attribute       |
| relationships | Derive nested DTOs for related entities        |
| deep_relationships | Nested DTOs keep their own relationships  |
| name          | Fix the output schema name                     |
| prefix/suffix | Decorate the derived name (suffix: DTO)        |
`

func runDocs(cmd *cobra.Command, args []string) error {
	content := usageDoc
	if len(args) > 0 {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		content = string(raw)
	}
	return ui.PrintMarkdown(content)
}
