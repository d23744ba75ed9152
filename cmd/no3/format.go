package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nitrate-lang/no3/internal/compiler"
	no3format "github.com/nitrate-lang/no3/internal/format"
)

func newFormatCommand() *cobra.Command {
	var (
		std     bool
		minify  bool
		deflate bool
		config  string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "format <path>",
		Short: "Format, minify, or deflate .nit source files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := args[0]

			mode := no3format.Standard
			switch {
			case minify:
				mode = no3format.Minify
			case deflate:
				mode = no3format.Deflate
			}

			cfg := no3format.DefaultConfig()
			if config == "" {
				candidate := filepath.Join(source, "format.json")
				if fileExists(candidate) {
					config = candidate
				}
			}
			if config != "" {
				loaded, err := no3format.LoadConfig(config)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			mappings, err := no3format.FormulateFileMapping(source, output)
			if err != nil {
				return err
			}

			result := no3format.FormatFiles(cmd.Context(), mappings, mode, cfg, compiler.NewStubFrontend(), logger.Named("format"))
			if len(result.Failed) > 0 {
				return fmt.Errorf("format: %d of %d file(s) failed", len(result.Failed), len(mappings))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "formatted %d file(s)\n", len(result.Succeeded))
			return nil
		},
	}

	cmd.Flags().BoolVar(&std, "std", false, "render under the standard whitespace/comment rules (default)")
	cmd.Flags().BoolVar(&minify, "minify", false, "strip insignificant whitespace, and // comments unless the config preserves them (the default does)")
	cmd.Flags().BoolVar(&deflate, "deflate", false, "minify, then raw-deflate behind a decode preamble")
	cmd.Flags().StringVar(&config, "config", "", "format.json path (default: <path>/format.json if present)")
	cmd.Flags().StringVar(&output, "output", "", "destination path or directory (default: format in place)")
	cmd.MarkFlagsMutuallyExclusive("std", "minify", "deflate")

	return cmd
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
