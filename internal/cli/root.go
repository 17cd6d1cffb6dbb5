// Package cli implements the codeprint command-line interface.
//
// The render command turns declaration documents (YAML, JSON or TOML) into
// PHP files. All commands accept --verbose (-v) to log layout decisions.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var version = "dev"

// SetVersion sets the version displayed by --version.
func SetVersion(v string) { version = v }

// NewRootCommand builds the command tree. Logs go to stderr.
func NewRootCommand(stderr io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "codeprint",
		Short:         "codeprint prints generated PHP declarations",
		Long:          `codeprint renders declaration documents into PHP source files, wrapping long parameter lists and separating class members with blank lines.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(stderr, level)))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newFormatsCmd())
	return root
}

// Execute runs the CLI with args.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := NewRootCommand(stderr)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}
