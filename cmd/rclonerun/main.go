// Command rclonerun runs one rclone command through the typed client and
// reports the classified, parsed result.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/monopole/rclonerun"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		// Mirror rclone's own exit status where one exists.
		var exitErr *rclonerun.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Status)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgPath  string
		tool     string
		suppress []string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "rclonerun TEMPLATE [ARG]...",
		Short: "Run one rclone command and report a typed result",
		Long: `Run one rclone command and report a typed result.

The template uses %s placeholders filled from the remaining arguments,
e.g.:

  rclonerun "copy %s %s" local/dir remote:dir
  rclonerun --suppress dir-not-found "lsjson %s" remote:missing/
`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rclonerun.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			params := cfg.Parameters()
			if tool != "" {
				params.Path = tool
			}
			params.Suppress = append(params.Suppress, suppress...)
			runner, err := rclonerun.NewRunner(params)
			if err != nil {
				return err
			}
			vals := make([]any, len(args)-1)
			for i, a := range args[1:] {
				vals[i] = a
			}
			res, err := runner.Run(rclonerun.Command{
				Template: args[0], Args: vals,
			})
			if err != nil {
				return err
			}
			return report(cmd.OutOrStdout(), res, asJSON)
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "YAML config file")
	cmd.Flags().StringVar(&tool, "rclone", "", "path to the rclone executable")
	cmd.Flags().StringSliceVar(&suppress, "suppress", nil,
		"error kinds to downgrade to warnings (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	return cmd
}

func report(w io.Writer, res *rclonerun.Result, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	fmt.Fprintf(w, "status: %d (%s)\n", res.Status, res.Kind)
	if res.Warning != nil {
		fmt.Fprintf(w, "warning: %v\n", res.Warning)
	}
	if res.Parsed != nil {
		fmt.Fprintf(w, "parsed: %+v\n", res.Parsed)
	} else if !res.Echoed && res.Output != "" {
		fmt.Fprint(w, res.Output)
		if !strings.HasSuffix(res.Output, "\n") {
			fmt.Fprintln(w)
		}
	}
	return nil
}
