package cmd

import (
	"fmt"

	"github.com/nfrund/safeonboard/cmd/onboard-cli/internal/display"
	"github.com/spf13/cobra"
)

var stepsOutputFormat string

// stepsCmd represents the steps command
var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "List the wizard steps and their fields",
	Long: `List every step of the onboarding wizard with the fields it owns,
the kind of value each field holds and the message shown when a required
field is missing.

Examples:
  onboard-cli steps                         # Table format
  onboard-cli steps --format json           # JSON format
  onboard-cli steps --catalog steps.yaml    # Inspect a custom catalog`,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		switch stepsOutputFormat {
		case "json":
			return display.StepsJSON(cmd.OutOrStdout(), catalog)
		case "table":
			display.StepsTable(cmd.OutOrStdout(), catalog)
			return nil
		default:
			return fmt.Errorf("unsupported output format %q, use 'table' or 'json'", stepsOutputFormat)
		}
	},
}

func init() {
	rootCmd.AddCommand(stepsCmd)
	stepsCmd.Flags().StringVarP(&stepsOutputFormat, "format", "f", "table", "Output format (table, json)")
}
