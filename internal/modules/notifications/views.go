package notifications

import (
	"strings"

	"github.com/nfrund/safeonboard/internal/modules/onboarding"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// ReceivedEmail is the HTML body of the submission acknowledgement.
func ReceivedEmail(p onboarding.ProfileCompleted) g.Node {
	name := strings.TrimSpace(p.Title + " " + p.LastName)
	if name == "" {
		name = "provider"
	}
	return h.Div(
		h.P(g.Textf("Dear %s,", name)),
		h.P(g.Text("Thank you for completing your SafeOnboard profile")),
		g.If(p.OrganizationName != "", h.P(g.Textf("Organization: %s", p.OrganizationName))),
		h.P(g.Text("Our team will review your profile and verification documents. " +
			"You will receive a notification once your account is activated.")),
		h.P(g.Text("Your courage inspires us. Every step forward is a step toward healing and hope.")),
		h.P(g.Text("Safe AI Team")),
	)
}
