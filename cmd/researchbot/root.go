package main

import (
	"context"
	"os"

	"github.com/sandevgo/researchbot/internal/config"
	"github.com/sandevgo/researchbot/pkg/log"
	"github.com/spf13/cobra"
)

var (
	debug bool
)

var rootCmd = &cobra.Command{
	Use:   "researchbot",
	Short: "ResearchBot — an AI research assistant with persistent context",
	Long:  `ResearchBot keeps per-session conversation and research context and serves it over an HTTP API.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", config.IsDebug(), "enable debug logging")
}

func setupLogger(ctx context.Context) (context.Context, func()) {
	isDebug := debug || config.IsDebug()
	return log.NewContextWithLogger(ctx, isDebug)
}
