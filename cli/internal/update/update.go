// Package update checks the running CLI version against a configured minimum.
package update

import (
	"fmt"

	"github.com/hashicorp/go-version"

	"github.com/overzetten/overzetten/cli/internal/ui"
)

// CheckMinVersion verifies the running version satisfies the minimum pinned
// in the configuration file. Projects pin a minimum so generated code stays
// reproducible across a team.
func CheckMinVersion(currentVersion, minVersion string) error {
	if minVersion == "" {
		return nil
	}

	current, err := version.NewVersion(currentVersion)
	if err != nil {
		return fmt.Errorf("invalid version format: %w", err)
	}
	min, err := version.NewVersion(minVersion)
	if err != nil {
		return fmt.Errorf("invalid min_version in configuration: %w", err)
	}

	if current.LessThan(min) {
		ui.PrintWarning("This project requires overzetten >= %s (running %s)", minVersion, currentVersion)
		fmt.Printf("\nUpdate with: go install github.com/overzetten/overzetten/cli@latest\n")
		return fmt.Errorf("overzetten %s is older than required %s", currentVersion, minVersion)
	}

	return nil
}
