package rclonerun_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/monopole/rclonerun"
	"github.com/monopole/rclonerun/exitcode"
	. "github.com/monopole/rclonerun/internal/testing"
	"github.com/monopole/rclonerun/parsers"
)

const nonexistentToolPath = "/no/such/beamMeUpScotty"

func TestRunner_FormatErrorRunsNothing(t *testing.T) {
	// The path doesn't resolve, proving the error comes before any exec.
	runner, err := NewRunner(&Parameters{Path: nonexistentToolPath})
	require.NoError(t, err)
	res, err := runner.RunFmt("copy %s %s", "onlyOne")
	if !assert.Error(t, err) {
		t.Fatal("expecting an error")
	}
	assert.Contains(t, err.Error(), "formatting")
	assert.Nil(t, res)
}

func TestRunner_BadExecutable(t *testing.T) {
	runner, err := NewRunner(&Parameters{Path: nonexistentToolPath})
	require.NoError(t, err)
	_, err = runner.RunFmt("version")
	if !assert.Error(t, err) {
		t.Fatal("expecting an error")
	}
	assert.Contains(t, err.Error(), "trying to start")
}

func TestRunner_CopyParsedAndQuiet(t *testing.T) {
	output := `
2023/05/01 12:00:00 INFO  : a/b.txt: Copied (new)
2023/05/01 12:00:01 INFO  : c/d.txt: Copied (replaced existing)
`[1:]
	var echo bytes.Buffer
	runner, err := NewRunner(&Parameters{
		Path: FakeTool(t, output, 0),
		Echo: &echo,
	})
	require.NoError(t, err)
	res, err := runner.RunFmt("copy %s %s", "local/dir", "remote:dir")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(res.Cmd, " -v"), "auto-appended verbose")
	assert.Equal(t, "copy", res.Subcommand)
	assert.Equal(t, 0, res.Status)
	assert.Equal(t, exitcode.KindNone, res.Kind)
	assert.Nil(t, res.Warning)
	assert.Equal(t, output, res.Output)

	// The caller never asked for verbose, so nothing was echoed live.
	assert.False(t, res.Echoed)
	assert.Empty(t, echo.String())

	report, ok := res.Parsed.(*parsers.CopyReport)
	require.True(t, ok)
	assert.Equal(t, []string{"a/b.txt"}, report.New)
	assert.Equal(t, []string{"c/d.txt"}, report.Updated)
}

func TestRunner_VerboseEchoesLive(t *testing.T) {
	var echo bytes.Buffer
	runner, err := NewRunner(&Parameters{
		Path: FakeTool(t, "rclone v1.66.0\n", 0),
		Echo: &echo,
	})
	require.NoError(t, err)
	res, err := runner.RunFmt("version -v")
	require.NoError(t, err)
	assert.True(t, res.Echoed)
	assert.Equal(t, "rclone v1.66.0\n", echo.String())
	assert.Equal(t, "rclone v1.66.0\n", res.Output)
	// No parser for version; the raw text is all there is.
	assert.Nil(t, res.Parsed)
}

func TestRunner_FatalExitCarriesCmdAndOutput(t *testing.T) {
	runner, err := NewRunner(&Parameters{
		Path: FakeTool(t, "boom: cannot reach remote\n", 7),
	})
	require.NoError(t, err)
	res, err := runner.RunFmt("lsjson %s", "remote:data/")
	if !assert.Error(t, err) {
		t.Fatal("expecting an error")
	}
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, exitcode.KindFatal, exitErr.Kind)
	assert.Contains(t, err.Error(), res.Cmd)
	assert.Contains(t, err.Error(), "boom: cannot reach remote")

	// The result still reports what happened, but parsing was skipped.
	require.NotNil(t, res)
	assert.Equal(t, 7, res.Status)
	assert.Equal(t, exitcode.KindFatal, res.Kind)
	assert.Nil(t, res.Parsed)
}

func TestRunner_SuppressedDirNotFound(t *testing.T) {
	runner, err := NewRunner(&Parameters{
		Path: FakeTool(t, "directory not found\n", 3),
	})
	require.NoError(t, err)
	res, err := runner.Run(Command{
		Template: "lsjson %s",
		Args:     []any{"remote:missing/"},
		Suppress: []string{"DIR-NOT-FOUND"},
	})
	require.NoError(t, err)
	assert.Equal(t, exitcode.KindDirNotFound, res.Kind)
	require.NotNil(t, res.Warning)
	assert.Contains(t, res.Warning.Error(), "dir-not-found")

	// Parsing still happened and produced the explicit empty listing.
	listing, ok := res.Parsed.(*parsers.JSONListing)
	require.True(t, ok)
	assert.Nil(t, listing.Value)
}

func TestRunner_RunnerWideSuppression(t *testing.T) {
	runner, err := NewRunner(&Parameters{
		Path:     FakeTool(t, "", 5),
		Suppress: []string{"temporary"},
	})
	require.NoError(t, err)
	res, err := runner.RunFmt("version")
	require.NoError(t, err)
	assert.Equal(t, exitcode.KindTemporary, res.Kind)
	assert.NotNil(t, res.Warning)
}

func TestRunner_SuppressionDoesNotCoverOtherKinds(t *testing.T) {
	runner, err := NewRunner(&Parameters{
		Path:     FakeTool(t, "", 7),
		Suppress: []string{"temporary"},
	})
	require.NoError(t, err)
	_, err = runner.RunFmt("version")
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, exitcode.KindFatal, exitErr.Kind)
}

func TestRunner_UnknownStatus(t *testing.T) {
	runner, err := NewRunner(&Parameters{Path: FakeTool(t, "", 42)})
	require.NoError(t, err)
	res, err := runner.Run(Command{
		Template: "version",
		Suppress: []string{"unknown"},
	})
	require.NoError(t, err)
	assert.Equal(t, 42, res.Status)
	assert.Equal(t, exitcode.KindUnknown, res.Kind)
}

func TestRunner_Md5sumPipeline(t *testing.T) {
	output := `
d41d8cd98f00b204e9800998ecf8427e  file1.txt
098f6bcd4621d373cade4e832627b4f6  sub/file2.txt
`[1:]
	var echo bytes.Buffer
	runner, err := NewRunner(&Parameters{
		Path: FakeTool(t, output, 0),
		Echo: &echo,
	})
	require.NoError(t, err)
	res, err := runner.RunFmt("md5sum %s -v", "remote:data/")
	require.NoError(t, err)

	// The verbose token was stripped from the executed command line, but
	// the caller asked for verbose, so echo still happened.
	assert.NotContains(t, res.Cmd, "-v")
	assert.True(t, res.Echoed)
	assert.Equal(t, output, echo.String())

	listing, ok := res.Parsed.(parsers.HashListing)
	require.True(t, ok)
	assert.Equal(t, parsers.HashListing{
		"remote:data/file1.txt":     "d41d8cd98f00b204e9800998ecf8427e",
		"remote:data/sub/file2.txt": "098f6bcd4621d373cade4e832627b4f6",
	}, listing)
}

func TestRunner_ParseErrorAbortsDespiteSuppression(t *testing.T) {
	runner, err := NewRunner(&Parameters{
		Path: FakeTool(t, "not a checksum line\n", 0),
	})
	require.NoError(t, err)
	res, err := runner.Run(Command{
		Template: "md5sum %s",
		Args:     []any{"remote:data/"},
		Suppress: []string{"uncategorized"},
	})
	if !assert.Error(t, err) {
		t.Fatal("expecting an error")
	}
	var parseErr *parsers.ParseError
	assert.True(t, errors.As(err, &parseErr))
	require.NotNil(t, res)
	assert.Nil(t, res.Parsed)
}
