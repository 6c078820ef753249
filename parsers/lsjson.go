package parsers

import (
	"encoding/json"
	"fmt"

	"github.com/monopole/rclonerun/exitcode"
	"github.com/monopole/rclonerun/internal/cmdline"
)

// JSONListing wraps the decoded lsjson document. Value is nil when the
// listed directory did not exist and rclone produced no JSON.
type JSONListing struct {
	Value any
}

func (*JSONListing) isParsed() {}

// LsJSONParser decodes lsjson output.
type LsJSONParser struct{}

var _ Parser = &LsJSONParser{}

// Subcommand returns "lsjson".
func (*LsJSONParser) Subcommand() string { return cmdline.SubLsJSON }

// Parse decodes the whole captured text as one JSON document. When the
// exit classification says the directory was not found, there is no usable
// JSON on the stream regardless of what was captured, so an empty listing
// is returned instead of a decode error.
func (*LsJSONParser) Parse(output, _ string, kind exitcode.Kind) (Parsed, error) {
	if kind == exitcode.KindDirNotFound {
		return &JSONListing{}, nil
	}
	var v any
	if err := json.Unmarshal([]byte(output), &v); err != nil {
		return nil, &ParseError{
			Subcommand: cmdline.SubLsJSON,
			Msg:        fmt.Sprintf("invalid JSON: %v", err),
		}
	}
	return &JSONListing{Value: v}, nil
}
