package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bjaus/codeprint"
)

type renderOpts struct {
	format string
	out    string
}

func newRenderCmd() *cobra.Command {
	var opts renderOpts
	cmd := &cobra.Command{
		Use:   "render [files...]",
		Short: "Render declaration documents as PHP files",
		Long: `Render reads each declaration document and prints it as a PHP file.

The document format comes from --format or, when unset, from the file
extension (.yaml, .yml, .json, .toml). Without files the document is read
from stdin and --format is required. Output goes to stdout unless --out names
a directory, which receives one <ClassName>.php file per document.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "document format (yaml, json, toml)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output directory")
	return cmd
}

func runRender(cmd *cobra.Command, args []string, opts renderOpts) error {
	logger := loggerFromContext(cmd.Context())
	pp := codeprint.New(codeprint.WithLogger(logger))

	if len(args) == 0 {
		if opts.format == "" {
			return errors.New("--format is required when reading stdin")
		}
		return renderOne(cmd, pp, cmd.InOrStdin(), "stdin", opts)
	}
	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		err = renderOne(cmd, pp, f, path, opts)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func renderOne(cmd *cobra.Command, pp *codeprint.PrettyPrinter, r io.Reader, name string, opts renderOpts) error {
	logger := loggerFromContext(cmd.Context())

	format, err := documentFormat(name, opts.format)
	if err != nil {
		return err
	}
	entity, err := codeprint.Decode(r, format)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := pp.Write(&buf, entity); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	if opts.out == "" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	class, ok := entity.Node().(*codeprint.Class)
	if !ok {
		return fmt.Errorf("%s: %w: top-level node is not a class", name, codeprint.ErrMalformedTree)
	}
	if err := os.MkdirAll(opts.out, 0o755); err != nil {
		return err
	}
	dest := filepath.Join(opts.out, class.Name+".php")
	if err := os.WriteFile(dest, buf.Bytes(), 0o644); err != nil {
		return err
	}
	logger.Info("Rendered", "src", name, "dest", dest)
	return nil
}

func documentFormat(name, flag string) (codeprint.Format, error) {
	if flag != "" {
		return codeprint.ParseFormat(flag)
	}
	return codeprint.FormatFromPath(name)
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported document formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range codeprint.Formats() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), f); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
