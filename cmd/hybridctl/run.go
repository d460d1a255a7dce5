package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/quantafold/hybrid-core/internal/driver"
	"github.com/quantafold/hybrid-core/internal/input"
	"github.com/quantafold/hybrid-core/internal/store"
	"github.com/quantafold/hybrid-core/pkg/config"
	"github.com/quantafold/hybrid-core/pkg/logger"
)

var (
	runConfigPath string
	runInputPath  string
	runStoreKind  string
	runStorePath  string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Resolve a configuration and execute the selected algorithm",
	RunE:  runAlgorithm,
}

func init() {
	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "Configuration file (required)")
	runCmd.Flags().StringVar(&runInputPath, "input", "", "Input artifact file, overriding the input section")
	runCmd.Flags().StringVar(&runStoreKind, "store", "", "Record the run: memory or sqlite")
	runCmd.Flags().StringVar(&runStorePath, "store-path", "runs.db", "Path of the sqlite run store")

	runCmd.MarkFlagRequired("config")
	rootCmd.AddCommand(runCmd)
}

func runAlgorithm(cmd *cobra.Command, args []string) error {
	raw, err := config.LoadFile(runConfigPath)
	if err != nil {
		return err
	}

	artifact, err := loadInputArtifact(runInputPath)
	if err != nil {
		return err
	}

	drv, err := driver.NewRuntime(logger.Default)
	if err != nil {
		return err
	}

	execution, err := drv.Run(cmd.Context(), raw, artifact, true)
	if err != nil {
		return err
	}

	if runStoreKind != "" {
		if err := recordRun(cmd, execution); err != nil {
			logger.Warn("failed to record run", "error", err)
		}
	}

	if count, ok := execution.Result["eval_count"].(int); ok {
		logger.Info("evaluation summary",
			"algorithm", execution.Algorithm,
			"evaluations", humanize.Comma(int64(count)),
			"elapsed", execution.Elapsed,
		)
	}

	out, err := json.MarshalIndent(execution.Result, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to render result: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}

func recordRun(cmd *cobra.Command, execution *driver.Execution) error {
	runs, err := store.NewStore(runStoreKind, runStorePath)
	if err != nil {
		return err
	}
	defer store.CloseIfSupported(runs)
	if err := runs.Init(cmd.Context()); err != nil {
		return err
	}

	record := store.Record{
		ID:        uuid.NewString(),
		Algorithm: execution.Algorithm,
		Status:    store.StatusCompleted,
		CreatedAt: time.Now().UTC(),
	}
	if data, err := json.Marshal(execution.Resolved); err == nil {
		record.Config = data
	}
	if data, err := json.Marshal(execution.Result); err == nil {
		record.Result = data
	}
	return runs.SaveRun(cmd.Context(), record)
}

// loadInputArtifact reads an operator property file into an input artifact.
// The file is a flat property mapping, not a sectioned configuration.
func loadInputArtifact(path string) (any, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", path, err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse input file %s: %w", path, err)
	}
	props, ok := config.Normalize(doc).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("input file %s must be a property mapping", path)
	}
	return input.FromProperties(props)
}
