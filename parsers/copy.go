package parsers

import (
	"regexp"
	"strings"

	"github.com/monopole/rclonerun/exitcode"
	"github.com/monopole/rclonerun/internal/cmdline"
)

// CopyReport lists the paths a copy run touched, in order of appearance in
// the log: freshly copied files, overwritten files, and dry-run skips.
type CopyReport struct {
	New     []string
	Updated []string
	Dry     []string
}

func (*CopyReport) isParsed() {}

// The copy log line grammar: a YYYY/MM/DD HH:MM:SS timestamp, a level tag,
// then the path (a token with a .ext suffix) and the message. INFO lines
// may trail other text on the stream so they anchor at end of line only;
// the NOTICE dry-run line anchors at start of line.
var (
	reCopiedNew = regexp.MustCompile(
		`\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2} INFO  : (\S+\.\w+): Copied \(new\)$`)
	reCopiedExisting = regexp.MustCompile(
		`\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2} INFO  : (\S+\.\w+): Copied \(replaced existing\)$`)
	reDryRun = regexp.MustCompile(
		`^\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2} NOTICE: (\S+\.\w+): Not copying as --dry-run$`)
)

// CopyParser scans copy output line by line for per-file transfer messages.
// Lines matching nothing (stats blocks, chatter) are ignored.
type CopyParser struct{}

var _ Parser = &CopyParser{}

// Subcommand returns "copy".
func (*CopyParser) Subcommand() string { return cmdline.SubCopy }

// Parse never fails; output with no recognizable lines yields an empty
// report.
func (*CopyParser) Parse(output, _ string, _ exitcode.Kind) (Parsed, error) {
	r := &CopyReport{}
	for _, line := range strings.Split(output, "\n") {
		if m := reCopiedNew.FindStringSubmatch(line); m != nil {
			r.New = append(r.New, m[1])
			continue
		}
		if m := reCopiedExisting.FindStringSubmatch(line); m != nil {
			r.Updated = append(r.Updated, m[1])
			continue
		}
		if m := reDryRun.FindStringSubmatch(line); m != nil {
			r.Dry = append(r.Dry, m[1])
		}
	}
	return r, nil
}
