//go:build tools

package rclonerun

// Pins lint tooling to the module so everyone runs the same version.
import (
	_ "github.com/client9/misspell/cmd/misspell"
)
