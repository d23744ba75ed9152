package main

import (
	"fmt"
	"net"
	"os"

	"github.com/spf13/cobra"

	"github.com/nitrate-lang/no3/internal/logging"
	"github.com/nitrate-lang/no3/internal/lspserver"
)

func newLSPCommand() *cobra.Command {
	var (
		stdio bool
		port  int
	)

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Run the language server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			serverLogger := logger.Named("lsp")

			if port != 0 {
				return runTCP(port, serverLogger)
			}
			return lspserver.Serve(os.Stdin, os.Stdout, serverLogger)
		},
	}

	cmd.Flags().BoolVar(&stdio, "stdio", true, "communicate over stdin/stdout (default)")
	cmd.Flags().IntVar(&port, "port", 0, "listen for a single TCP connection on this port instead of stdio")
	cmd.MarkFlagsMutuallyExclusive("stdio", "port")

	return cmd
}

// runTCP accepts exactly one connection and serves it, mirroring the
// teacher's -tcp debugging mode but scoped to a single client since
// this driver's Context is not designed for concurrent sessions.
func runTCP(port int, serverLogger *logging.Logger) error {
	addr := fmt.Sprintf("0.0.0.0:%d", port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	defer ln.Close()

	serverLogger.Infof("lsp: listening on %s", addr)

	conn, err := ln.Accept()
	if err != nil {
		return fmt.Errorf("accepting connection: %w", err)
	}
	defer conn.Close()

	return lspserver.Serve(conn, conn, serverLogger)
}
