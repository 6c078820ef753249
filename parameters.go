package rclonerun

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// DefaultTool is the executable invoked when Parameters.Path is empty.
const DefaultTool = "rclone"

// Parameters is a bag of parameters for Runner.
type Parameters struct {
	// Path is the absolute or PATH-relative path to the rclone executable.
	// Defaults to DefaultTool. Existence is not checked here; a missing
	// executable surfaces as an error on the first Run.
	Path string

	// Echo receives subprocess output live, as it arrives, whenever the
	// caller puts a verbose flag on the command line. Defaults to
	// os.Stdout. Inject a buffer to capture or suppress it in tests.
	//
	// Two Runs echoing concurrently interleave on this sink in no
	// particular order.
	Echo io.Writer

	// Suppress holds error-kind identifiers (see exitcode.Kind) to
	// downgrade from fatal to warning on every Run. Per-call lists from
	// Command.Suppress add to it.
	Suppress []string

	// Logger receives debug records for each compiled command and exit
	// status. Defaults to slog.Default().
	Logger *slog.Logger
}

// Validate looks for trouble and sets defaults.
func (p *Parameters) Validate() error {
	if p.Path == "" {
		p.Path = DefaultTool
	}
	// The command line is tokenized on whitespace, so a path containing
	// any would be split apart.
	if strings.ContainsAny(p.Path, " \t") {
		return fmt.Errorf("tool path %q must not contain whitespace", p.Path)
	}
	if p.Echo == nil {
		p.Echo = os.Stdout
	}
	if p.Logger == nil {
		p.Logger = slog.Default()
	}
	return nil
}
