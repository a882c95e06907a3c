package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/nfrund/safeonboard/cmd/onboard-cli/internal/display"
	"github.com/nfrund/safeonboard/cmd/onboard-cli/internal/profile"
	"github.com/nfrund/safeonboard/internal/wizard"
	"github.com/spf13/cobra"
)

// errInvalidProfile makes the command exit non-zero after the report.
var errInvalidProfile = errors.New("profile is incomplete")

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <profile.yaml>",
	Short: "Check a profile file against every wizard step",
	Long: `Validate a provider profile kept in a YAML file, step by step, with the
same rules the wizard applies when Next is pressed.

Text and dropdown fields take a string, multi-select fields a list and
attachment fields a file name:

  title: Dr
  firstName: Amina
  serviceType: [Therapy, Legal Aid]
  credentials: licence.pdf

Output:
  ✅ Step passed
  ❌ Step failed, followed by one line per missing field`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		data, err := profile.Load(f)
		if err != nil {
			return fmt.Errorf("read profile %s: %w", args[0], err)
		}

		results := profile.Check(wizard.NewMachine(catalog), data)
		display.Results(cmd.OutOrStdout(), results)
		if !profile.Passed(results) {
			return errInvalidProfile
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
