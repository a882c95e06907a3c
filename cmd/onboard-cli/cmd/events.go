package cmd

import (
	"github.com/nfrund/safeonboard/cmd/onboard-cli/internal/display"
	"github.com/nfrund/safeonboard/internal/modules/login"
	"github.com/nfrund/safeonboard/internal/modules/onboarding"
	"github.com/spf13/cobra"
)

// eventsCmd represents the events command
var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List the events published on the bus",
	Long: `List the topics the server publishes, for wiring up subscribers
that forward completed profiles to a verification backend.`,
	Run: func(cmd *cobra.Command, args []string) {
		display.Events(cmd.OutOrStdout(), []display.Event{
			{Name: login.VisitorLoggedInEvent.Name(), Description: login.VisitorLoggedInEvent.Description()},
			{Name: onboarding.ProfileCompletedEvent.Name(), Description: onboarding.ProfileCompletedEvent.Description()},
		})
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
}
