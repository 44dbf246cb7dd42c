// Package commands implements the overzetten CLI.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/overzetten/overzetten/internal/debug"
)

var rootCmd = &cobra.Command{
	Use:   "overzetten",
	Short: "Derive DTO schemas from entity definitions",
	Long: `Overzetten derives data-transfer schemas from an entity schema file.

Define entities once in schema.esl, describe per-DTO policies in
.overzetten.yaml, and generate Go structs plus JSON Schema documents.`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

var debugFlag bool

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
	cobra.OnInitialize(func() {
		debug.Init(debugFlag)
	})
}

// Execute is the main entry point for the CLI
func Execute() error {
	return rootCmd.Execute()
}
