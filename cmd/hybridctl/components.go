package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quantafold/hybrid-core/internal/driver"
	"github.com/quantafold/hybrid-core/internal/registry"
	"github.com/quantafold/hybrid-core/pkg/logger"
)

var componentsRole string

var componentsCmd = &cobra.Command{
	Use:   "components",
	Short: "List the registered component variants per role",
	Long: `Lists every currently available component variant. Variants whose
availability check fails in this deployment are omitted.`,
	RunE: listComponents,
}

func init() {
	componentsCmd.Flags().StringVar(&componentsRole, "role", "", "Restrict listing to one role")
	rootCmd.AddCommand(componentsCmd)
}

func listComponents(cmd *cobra.Command, args []string) error {
	drv, err := driver.NewRuntime(logger.Default)
	if err != nil {
		return err
	}

	if componentsRole != "" && !registry.Role(componentsRole).Valid() {
		return fmt.Errorf("unknown role: %s", componentsRole)
	}

	for _, role := range registry.Roles() {
		if componentsRole != "" && componentsRole != string(role) {
			continue
		}
		fmt.Fprintf(os.Stdout, "%s:\n", role)
		for _, name := range drv.Registry().List(role) {
			fmt.Fprintf(os.Stdout, "  %s\n", name)
		}
	}
	return nil
}
