// Command no3 is the Nitrate toolchain driver: it initializes package
// trees, formats source files, runs the language server, and exposes
// the manifest/parse pipelines standalone under "impl" for scripting
// and debugging.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nitrate-lang/no3/internal/logging"
)

var (
	logLevel string
	logFile  string
	logger   *logging.Logger
)

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "no3",
		Short:         "The Nitrate toolchain driver",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging()
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", os.Getenv("NCC_LOG_LEVEL"), "log severity threshold (trace, debug, info, notice, warning, error, critical, alert, emergency)")
	root.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")

	root.AddCommand(newInitCommand())
	root.AddCommand(newFormatCommand())
	root.AddCommand(newLSPCommand())
	root.AddCommand(newImplCommand())

	return root
}

// setupLogging configures the process-wide logger from --log-level (or
// NCC_LOG_LEVEL) and --log-file, mirroring the teacher's
// cmd/go-dws-lsp/main.go setupLogging in structure but layered on
// internal/logging's severity-filtered Logger instead of the bare
// standard library logger.
func setupLogging() error {
	threshold := logging.Info
	if logLevel != "" {
		threshold = logging.ParseLevel(logLevel)
	}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file %s: %w", logFile, err)
		}
		logger = logging.New("no3", threshold, f, 0)
	} else {
		logger = logging.NewStderr("no3", threshold)
	}

	return nil
}
