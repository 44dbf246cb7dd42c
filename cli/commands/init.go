package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/overzetten/overzetten/cli/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Initialize a new overzetten project",
	Long: `Initialize a new overzetten project.

Creates a starter schema.esl, a .overzetten.yaml configuration file,
a .env.example and a .gitignore.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

var initYes bool

func init() {
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Accept all defaults without prompting")

	rootCmd.AddCommand(initCmd)
}

const starterSchema = `/// A registered user.
entity User {
  id       Int      @id @default(autoincrement())
  name     String
  fullname String?
  joined   DateTime @default(now())
}
`

const starterGitignore = `# Generated files
generated/

# Environment variables
.env
.env.local

# IDE
.idea/
.vscode/
*.swp

# OS
.DS_Store
`

const starterEnv = `# WhatsApp webhook credentials (only needed when running the webhook server)
WHATSAPP_VERIFY_TOKEN=""
WHATSAPP_APP_SECRET=""
`

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	ui.PrintHeader("Overzetten", "Initialize Project")

	answers := struct {
		SchemaPath string
		OutputPath string
		Package    string
	}{
		SchemaPath: "schema.esl",
		OutputPath: "./generated",
		Package:    "generated",
	}

	if !initYes {
		questions := []*survey.Question{
			{
				Name:   "schemaPath",
				Prompt: &survey.Input{Message: "Schema file path:", Default: answers.SchemaPath},
			},
			{
				Name:   "outputPath",
				Prompt: &survey.Input{Message: "Output directory:", Default: answers.OutputPath},
			},
			{
				Name:   "package",
				Prompt: &survey.Input{Message: "Generated package name:", Default: answers.Package},
			},
		}
		if err := survey.Ask(questions, &answers); err != nil {
			return err
		}
	}

	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create project directory: %w", err)
		}
		ui.PrintInfo("Created project directory: %s", dir)
	}

	schemaPath := filepath.Join(dir, answers.SchemaPath)
	if _, err := os.Stat(schemaPath); err == nil {
		ui.PrintWarning("Schema file already exists: %s", schemaPath)
	} else {
		if err := os.MkdirAll(filepath.Dir(schemaPath), 0755); err != nil {
			return fmt.Errorf("failed to create schema directory: %w", err)
		}
		if err := os.WriteFile(schemaPath, []byte(starterSchema), 0644); err != nil {
			return fmt.Errorf("failed to create schema file: %w", err)
		}
		ui.PrintSuccess("Created schema file: %s", schemaPath)
	}

	configPath := filepath.Join(dir, ".overzetten.yaml")
	if _, err := os.Stat(configPath); err == nil {
		ui.PrintWarning("Configuration file already exists: %s", configPath)
	} else {
		configContent := fmt.Sprintf(`schema_path: %s
output_path: %s
package: %s

dtos:
  - entity: User
  - entity: User
    name: PublicUser
    exclude: [joined]
`, answers.SchemaPath, answers.OutputPath, answers.Package)
		if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
			return fmt.Errorf("failed to create configuration file: %w", err)
		}
		ui.PrintSuccess("Created configuration file: %s", configPath)
	}

	envPath := filepath.Join(dir, ".env.example")
	if _, err := os.Stat(envPath); err != nil {
		if err := os.WriteFile(envPath, []byte(starterEnv), 0644); err != nil {
			ui.PrintWarning("Failed to create .env.example: %v", err)
		} else {
			ui.PrintSuccess("Created .env.example")
		}
	}

	gitignorePath := filepath.Join(dir, ".gitignore")
	if _, err := os.Stat(gitignorePath); err != nil {
		if err := os.WriteFile(gitignorePath, []byte(starterGitignore), 0644); err != nil {
			ui.PrintWarning("Failed to create .gitignore: %v", err)
		} else {
			ui.PrintSuccess("Created .gitignore")
		}
	}

	fmt.Println()
	ui.PrintSection("Next Steps")
	ui.PrintList([]string{
		"Edit " + answers.SchemaPath + " to define your entities",
		"Describe DTO policies in .overzetten.yaml",
		"Run: overzetten generate",
	})

	return nil
}
