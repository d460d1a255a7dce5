package main

import (
	"github.com/spf13/cobra"

	"github.com/quantafold/hybrid-core/internal/driver"
	"github.com/quantafold/hybrid-core/pkg/config"
	"github.com/quantafold/hybrid-core/pkg/logger"
)

var (
	dumpConfigPath string
	dumpInputPath  string
	dumpOutputPath string
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Resolve a configuration and persist it for later replay",
	Long: `Resolves the configuration and writes the fully resolved form to a
file instead of executing. The persisted file is self-contained: a directly
supplied input artifact is merged in under the input section, so the run can
be replayed without it.`,
	RunE: dumpConfiguration,
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpConfigPath, "config", "f", "", "Configuration file (required)")
	dumpCmd.Flags().StringVar(&dumpInputPath, "input", "", "Input artifact file to merge into the dump")
	dumpCmd.Flags().StringVarP(&dumpOutputPath, "out", "o", "algorithm.json", "Output file")

	dumpCmd.MarkFlagRequired("config")
	rootCmd.AddCommand(dumpCmd)
}

func dumpConfiguration(cmd *cobra.Command, args []string) error {
	raw, err := config.LoadFile(dumpConfigPath)
	if err != nil {
		return err
	}
	artifact, err := loadInputArtifact(dumpInputPath)
	if err != nil {
		return err
	}

	drv, err := driver.NewRuntime(logger.Default)
	if err != nil {
		return err
	}
	if _, err := drv.DumpToFile(raw, artifact, dumpOutputPath); err != nil {
		return err
	}
	return nil
}
