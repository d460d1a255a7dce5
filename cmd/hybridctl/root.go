package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/quantafold/hybrid-core/pkg/logger"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "hybridctl",
	Short: "Compose and run pluggable hybrid algorithms",
	Long: `hybridctl resolves a nested component configuration against the
registered component catalog, constructs the selected algorithm with its
dependencies, and executes it against an evaluation backend.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetDefault(logger.NewText(logLevel, os.Stderr))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}
