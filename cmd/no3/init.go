package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nitrate-lang/no3/internal/gitclient"
	"github.com/nitrate-lang/no3/internal/initpkg"
	"github.com/nitrate-lang/no3/internal/manifest"
	"github.com/nitrate-lang/no3/internal/spdx"
)

func newInitCommand() *cobra.Command {
	var (
		asLib       bool
		asStdLib    bool
		asExe       bool
		license     string
		output      string
		description string
	)

	cmd := &cobra.Command{
		Use:   "init <package-name>",
		Short: "Create a new package directory tree and Git repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if !manifest.IsValidName(name) {
				return fmt.Errorf("%q is not a valid package name", name)
			}

			category := resolveCategory(asLib, asStdLib)

			if !spdx.IsExactMatch(license) {
				return fmt.Errorf("%q is not a recognized SPDX license identifier (closest match: %q)", license, spdx.Suggest(license))
			}

			dest := output
			if dest == "" {
				dest = filepath.Base(name)
			}

			opts := initpkg.Options{
				Name:        name,
				Description: description,
				License:     license,
				Version:     manifest.NewVersion(0, 0, 0),
				Category:    category,
			}

			if err := initpkg.CreatePackage(dest, opts, logger.Named("init"), gitclient.New()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created package %s at %s\n", name, dest)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asLib, "lib", false, "create a library package")
	cmd.Flags().BoolVar(&asStdLib, "standard-lib", false, "create a standard-library package")
	cmd.Flags().BoolVar(&asExe, "exe", false, "create an executable package (default)")
	cmd.Flags().StringVar(&license, "license", "MIT", "SPDX license identifier")
	cmd.Flags().StringVar(&output, "output", "", "destination directory (default: the package name's final segment)")
	cmd.Flags().StringVar(&description, "description", "", "package description")
	cmd.MarkFlagsMutuallyExclusive("lib", "standard-lib", "exe")

	return cmd
}

// resolveCategory defaults to Executable; --exe is accepted only to
// make the default explicit and is mutually exclusive with the others.
func resolveCategory(asLib, asStdLib bool) manifest.Category {
	switch {
	case asLib:
		return manifest.Library
	case asStdLib:
		return manifest.StandardLibrary
	default:
		return manifest.Executable
	}
}
