package main

import (
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/sandevgo/researchbot/internal/calc"
	"github.com/sandevgo/researchbot/pkg/log"
	"github.com/spf13/cobra"
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Run the calculator MCP server on stdio",
	Long:  `Serves the arithmetic toolbox over the Model Context Protocol on stdin/stdout, for use as an agent tool backend.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// stdout carries the MCP protocol, so logs go to stderr.
		ctx, flushLog := log.NewContextWithLoggerTo(cmd.Context(), os.Stderr, debug)
		defer flushLog()

		log.FromCtx(ctx).Info().Msg("starting calculator mcp server on stdio")
		return mcpserver.ServeStdio(calc.NewServer())
	},
}

func init() {
	rootCmd.AddCommand(calcCmd)
}
