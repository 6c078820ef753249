// Package cmdline builds concrete rclone command lines: template
// substitution, verbose flag handling, subcommand identification and
// tokenization into argv form.
package cmdline

import (
	"regexp"
	"strings"
)

// The subcommands with structured-output parsers. Other subcommands run
// fine; their output just stays raw.
const (
	SubCopy   = "copy"
	SubMd5sum = "md5sum"
	SubLsJSON = "lsjson"
)

var (
	// A standalone short verbose option: -v, -vv, -vvv ... in any case,
	// bounded by whitespace or the ends of the line.
	verboseToken    = regexp.MustCompile(`(?i)^-v+$`)
	verboseAnywhere = regexp.MustCompile(`(?i)(^|\s)-v+(\s|$)`)

	alnumToken = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
)

// Compiled is a fully built command line, ready to exec.
type Compiled struct {
	// Line is the complete command line, used in error messages and by the
	// output parsers.
	Line string

	// Argv is Line split on whitespace; Argv[0] is the tool path and
	// Argv[1], when present, is the subcommand token.
	Argv []string

	// Subcommand is the lowercased leading token of the substituted
	// template, or "" when that token isn't purely alphanumeric.
	Subcommand string

	// Echo records whether the caller supplied a verbose flag themselves,
	// before any copy-specific auto-append. Live echo keys off this, not
	// off the flag's presence in Line.
	Echo bool
}

// Compile formats the template, prefixes the tool path, and applies the
// per-subcommand flag adjustments: copy gains a -v when the caller didn't
// ask for one (the copy parser needs per-file log lines), and md5sum loses
// any verbose token (verbose text corrupts its line grammar).
//
// The tool path must not contain whitespace; Parameters.Validate enforces
// that before Compile ever runs.
func Compile(tool, template string, args []any) (*Compiled, error) {
	body, err := Format(template, args)
	if err != nil {
		return nil, err
	}
	c := &Compiled{
		Line:       strings.TrimSpace(tool + " " + body),
		Subcommand: subcommandOf(body),
		Echo:       verboseAnywhere.MatchString(body),
	}
	switch c.Subcommand {
	case SubCopy:
		if !c.Echo {
			c.Line += " -v"
		}
	case SubMd5sum:
		c.Line = StripVerbose(c.Line)
	}
	c.Argv = strings.Fields(c.Line)
	return c, nil
}

// subcommandOf returns the lowercased leading token of the substituted
// template when that token is fully alphanumeric, else "".
func subcommandOf(body string) string {
	fields := strings.Fields(body)
	if len(fields) == 0 || !alnumToken.MatchString(fields[0]) {
		return ""
	}
	return strings.ToLower(fields[0])
}

// StripVerbose removes every standalone verbose token from the command
// line, collapsing runs of whitespace. Stripping twice equals stripping
// once.
func StripVerbose(line string) string {
	fields := strings.Fields(line)
	kept := fields[:0]
	for _, tok := range fields {
		if !verboseToken.MatchString(tok) {
			kept = append(kept, tok)
		}
	}
	return strings.Join(kept, " ")
}
