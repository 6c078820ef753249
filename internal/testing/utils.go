package testing

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// FakeTool writes an executable shell script into t's temp dir that prints
// the given output on stdout and exits with the given status, standing in
// for the rclone executable. It returns the script's path.
func FakeTool(t *testing.T, output string, status int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rclone")
	script := "#!/bin/sh\nprintf %s " + shellQuote(output) +
		"\nexit " + strconv.Itoa(status) + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
