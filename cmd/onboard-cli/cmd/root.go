package cmd

import (
	"os"

	"github.com/nfrund/safeonboard/internal/wizard"
	"github.com/spf13/cobra"
)

var catalogPath string

var rootCmd = &cobra.Command{
	Use:   "onboard-cli",
	Short: "SafeOnboard CLI tool",
	Long: `onboard-cli inspects the onboarding wizard without running the server.

Available commands:
  steps      List the wizard steps and their fields
  validate   Check a profile file against every step
  events     List the events published on the bus

Use "onboard-cli [command] --help" for more information about a specific command.`,
	SilenceUsage: true,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadCatalog returns the built-in catalog or the one named by --catalog.
func loadCatalog() (*wizard.Catalog, error) {
	if catalogPath == "" {
		return wizard.DefaultCatalog(), nil
	}
	data, err := os.ReadFile(catalogPath)
	if err != nil {
		return nil, err
	}
	return wizard.LoadCatalog(data)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&catalogPath, "catalog", "c", "", "Step catalog YAML file (defaults to the built-in catalog)")
}
