package parsers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/monopole/rclonerun/exitcode"
	"github.com/monopole/rclonerun/internal/cmdline"
)

// HashListing maps absolute file paths to their md5 checksums.
type HashListing map[string]string

func (HashListing) isParsed() {}

var (
	// One md5sum output line: 32 hex digits, exactly two spaces, the
	// relative path.
	reHashLine = regexp.MustCompile(`^([0-9a-fA-F]{32})  (.+)$`)

	// A file-style final path segment: something ending in a .ext suffix.
	reFileSuffix = regexp.MustCompile(`\.\w+$`)
)

// HashParser turns md5sum output into a path-to-hash map. The target path
// handed to the subcommand determines the base that relative filenames are
// joined onto.
type HashParser struct{}

var _ Parser = &HashParser{}

// Subcommand returns "md5sum".
func (*HashParser) Subcommand() string { return cmdline.SubMd5sum }

// Parse builds the listing. Empty output is an empty listing, not an error.
// A line off the grammar, or a target path that is neither a directory nor
// a file, is a *ParseError. Should rclone ever emit the same path twice,
// the last hash wins; upstream doesn't define this case.
func (*HashParser) Parse(output, cmdLine string, _ exitcode.Kind) (Parsed, error) {
	listing := HashListing{}
	if strings.TrimSpace(output) == "" {
		return listing, nil
	}
	base, err := baseDir(targetArg(cmdLine))
	if err != nil {
		return nil, err
	}
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		m := reHashLine.FindStringSubmatch(line)
		if m == nil {
			return nil, &ParseError{
				Subcommand: cmdline.SubMd5sum,
				Msg:        fmt.Sprintf("malformed checksum line %q", line),
			}
		}
		listing[base+m[2]] = m[1]
	}
	return listing, nil
}

// targetArg is the token immediately following the subcommand name in the
// compiled command line (argv[0] is the tool, argv[1] the subcommand).
func targetArg(cmdLine string) string {
	fields := strings.Fields(cmdLine)
	if len(fields) < 3 {
		return ""
	}
	return fields[2]
}

// baseDir classifies the md5sum target as a directory or a single file and
// returns the base to join relative filenames onto.
//
// A trailing "/" marks a directory, used as-is. Otherwise a final segment
// with a .ext suffix marks a file, and the containing portion is kept:
// through the last "/", or through the remote ":" when no slash is present,
// or nothing at all for a bare local filename. Anything else (no suffix,
// e.g. "remote:data" or "a.b/c") is a hard parse error rather than a guess.
func baseDir(target string) (string, error) {
	if target == "" {
		return "", &ParseError{
			Subcommand: cmdline.SubMd5sum,
			Msg:        "no target path on the command line",
		}
	}
	if strings.HasSuffix(target, "/") {
		return target, nil
	}
	cut := 0
	if i := strings.LastIndex(target, "/"); i >= 0 {
		cut = i + 1
	} else if i := strings.LastIndex(target, ":"); i >= 0 {
		cut = i + 1
	}
	if !reFileSuffix.MatchString(target[cut:]) {
		return "", &ParseError{
			Subcommand: cmdline.SubMd5sum,
			Msg: fmt.Sprintf(
				"path %q not recognized as a directory or a file", target),
		}
	}
	return target[:cut], nil
}
