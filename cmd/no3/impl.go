package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nitrate-lang/no3/internal/astdump"
	"github.com/nitrate-lang/no3/internal/compiler"
	no3format "github.com/nitrate-lang/no3/internal/format"
	"github.com/nitrate-lang/no3/internal/manifest"
)

func newImplCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "impl",
		Short: "Standalone manifest/parse pipeline commands",
	}
	cmd.AddCommand(newImplConfigCheckCommand())
	cmd.AddCommand(newImplParseCommand())
	return cmd
}

func newImplConfigCheckCommand() *cobra.Command {
	var (
		minify bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "config-check <manifest>",
		Short: "Validate a package manifest's schema and re-serialize it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			m, err := manifest.FromJSON(data)
			if err != nil {
				return fmt.Errorf("manifest file schema is incorrect: %w", err)
			}

			out, correctSchema, err := m.ToJSON(minify)
			if err != nil {
				return err
			}
			if !correctSchema {
				return fmt.Errorf("manifest file schema is incorrect")
			}

			return writeOutput(cmd, output, out)
		},
	}

	cmd.Flags().BoolVar(&minify, "minify", false, "re-serialize without indentation")
	cmd.Flags().StringVar(&output, "output", "-", `output path, or "-" for stdout`)

	return cmd
}

func newImplParseCommand() *cobra.Command {
	var (
		format   string
		tracking bool
		output   string
	)

	cmd := &cobra.Command{
		Use:   "parse <source...>",
		Short: "Parse source files and dump the resulting AST",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			frontend := compiler.NewStubFrontend()

			for _, path := range args {
				src, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("reading %s: %w", path, err)
				}

				prog, err := frontend.Parse(path, src)
				if err != nil {
					return fmt.Errorf("parsing %s: %w", path, err)
				}
				if prog.HasErrors() {
					return fmt.Errorf("parsing %s: %d diagnostic(s)", path, len(prog.Diagnostics))
				}

				var out []byte
				switch format {
				case "json", "":
					out, err = astdump.ToJSON(prog, tracking)
				case "protobuf":
					out, err = astdump.ToProtobuf(prog, tracking)
				case "minify":
					out = []byte(no3format.MinifySource(prog.Root.Text, no3format.DefaultConfig()))
				default:
					return fmt.Errorf("unknown --format %q (want json, protobuf, or minify)", format)
				}
				if err != nil {
					return err
				}

				if err := writeOutput(cmd, output, out); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "output format: json, protobuf, or minify")
	cmd.Flags().BoolVar(&tracking, "tracking", false, "include source positions in the dumped AST")
	cmd.Flags().StringVar(&output, "output", "-", `output path, or "-" for stdout`)

	return cmd
}

// writeOutput writes data to path, or to cmd's stdout when path is
// "-", matching ConfigParse.cc's and DumpAST.cc's stdout sentinel.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "-" {
		_, err := cmd.OutOrStdout().Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
