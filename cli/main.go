package main

import (
	"os"

	"github.com/overzetten/overzetten/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
