// Package parsers turns raw rclone output into typed results.
//
// One Parser exists per recognized subcommand (copy, md5sum, lsjson).
// Subcommands without a parser aren't an error; callers simply keep the raw
// output text.
package parsers

import (
	"fmt"

	"github.com/monopole/rclonerun/exitcode"
)

// Parsed is the tagged union of per-subcommand results: *CopyReport,
// HashListing or *JSONListing.
type Parsed interface {
	isParsed()
}

// Parser extracts a typed result from captured rclone output.
type Parser interface {
	// Subcommand names the rclone subcommand this parser understands.
	Subcommand() string

	// Parse turns captured output into a typed result. The compiled command
	// line and the exit classification are available for the parsers that
	// need them. Parsing the same inputs twice yields equal results.
	Parse(output, cmdLine string, kind exitcode.Kind) (Parsed, error)
}

// ParseError reports output or a command line that violates a subcommand's
// grammar. It is distinct from an execution failure and is never downgraded
// by suppression rules.
type ParseError struct {
	Subcommand string
	Msg        string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s output: %s", e.Subcommand, e.Msg)
}

var registry = map[string]Parser{}

func register(p Parser) {
	registry[p.Subcommand()] = p
}

func init() {
	register(&CopyParser{})
	register(&HashParser{})
	register(&LsJSONParser{})
}

// For returns the parser registered for the given subcommand, or nil when
// the subcommand has no structured output.
func For(subcommand string) Parser {
	return registry[subcommand]
}
