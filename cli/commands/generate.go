package commands

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/overzetten/overzetten/cli/internal/config"
	"github.com/overzetten/overzetten/cli/internal/ui"
	"github.com/overzetten/overzetten/cli/internal/update"
	"github.com/overzetten/overzetten/cli/internal/version"
	"github.com/overzetten/overzetten/cli/internal/watch"
	"github.com/overzetten/overzetten/generator"
)

var generateCmd = &cobra.Command{
	Use:   "generate [schema-path]",
	Short: "Generate DTO code from an entity schema",
	Long: `Generate Go structs and JSON Schema documents from your entity schema.

This command will:
- Parse and introspect your schema file
- Derive one DTO schema per configured dto block
- Write dtos.go and one .schema.json document per DTO`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

var (
	generateSchemaPath string
	generateOutput     string
	generateWatch      bool
	generateWatchOnly  bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateSchemaPath, "schema", "s", "", "Path to schema file")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output directory")
	generateCmd.Flags().BoolVarP(&generateWatch, "watch", "w", false, "Watch schema file for changes")
	generateCmd.Flags().BoolVar(&generateWatchOnly, "watch-only", false, "Only watch, don't generate initially")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if err := update.CheckMinVersion(version.Version, cfg.MinVersion); err != nil {
		return err
	}

	schemaPath := getSchemaPath(generateSchemaPath, args, cfg.SchemaPath)
	outputDir := cfg.OutputPath
	if generateOutput != "" {
		outputDir = generateOutput
	}

	if generateWatch || generateWatchOnly {
		return runGenerateWatch(cfg, schemaPath, outputDir, !generateWatchOnly)
	}

	ui.PrintHeader("Overzetten", "Generate DTOs")

	spinner, _ := ui.PrintSpinner("Generating DTO schemas...")
	defer spinner.Stop()

	count, err := generateOnce(cfg, schemaPath, outputDir)
	if err != nil {
		spinner.Stop()
		return err
	}
	spinner.Stop()

	info := pterm.Info.WithPrefix(pterm.Prefix{
		Text:  "INFO",
		Style: pterm.NewStyle(pterm.FgBlue),
	})
	info.Println(fmt.Sprintf("Schema: %s", schemaPath))
	info.Println(fmt.Sprintf("Output: %s", outputDir))
	info.Println(fmt.Sprintf("DTOs:   %d", count))
	fmt.Println()

	absPath, _ := filepath.Abs(outputDir)
	ui.PrintSuccess("Generated DTOs at %s", absPath)
	fmt.Println()

	ui.PrintSection("Generated Files")
	ui.PrintList([]string{
		"dtos.go            - DTO structs",
		"*.schema.json      - JSON Schema documents",
	})

	return nil
}

// generateOnce runs one full parse-derive-render pass and returns the number
// of configured targets.
func generateOnce(cfg *config.Config, schemaPath, outputDir string) (int, error) {
	set, err := loadEntitySet(schemaPath)
	if err != nil {
		return 0, err
	}

	targets, err := cfg.Targets(set)
	if err != nil {
		return 0, err
	}

	gen := generator.NewGenerator(set, targets, cfg.Package)
	if err := gen.Generate(outputDir); err != nil {
		return 0, fmt.Errorf("generation failed: %w", err)
	}
	return len(targets), nil
}

func runGenerateWatch(cfg *config.Config, schemaPath, outputDir string, generateInitially bool) error {
	ui.PrintHeader("Overzetten", "Watch Mode")

	if _, err := os.Stat(schemaPath); os.IsNotExist(err) {
		return fmt.Errorf("schema file not found: %s", schemaPath)
	}

	printers := ui.GetColorPrinters()
	generateCallback := func() error {
		ui.ColorPrint(printers["info"], "Schema changed, regenerating...\n")
		count, err := generateOnce(cfg, schemaPath, outputDir)
		if err != nil {
			return err
		}
		absPath, _ := filepath.Abs(outputDir)
		ui.ColorPrint(printers["success"], "Generated %d DTO(s) at %s\n", count, absPath)
		return nil
	}

	if generateInitially {
		if err := generateCallback(); err != nil {
			return err
		}
	}

	watcher, err := watch.NewWatcher(schemaPath, generateCallback)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Stop()

	if err := watcher.Start(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	ui.PrintSuccess("Watching %s for changes... (Press Ctrl+C to stop)", schemaPath)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	ui.PrintInfo("\nStopping watch mode...")
	return nil
}
