// Package rclonerun is a typed client for the rclone command line tool.
//
// Callers hand Run a command template (e.g. "copy %s %s") and substitution
// values. The package builds the full command line, executes rclone once as
// a subprocess, classifies the exit status against rclone's documented code
// table, and, for the copy, md5sum and lsjson subcommands, parses the
// captured output into typed results. Any other subcommand runs fine too;
// callers just get the raw output text.
//
// See example_test.go for an example, and Runner and parsers.Parser for
// detailed documentation.
package rclonerun
