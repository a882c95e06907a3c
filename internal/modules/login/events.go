package login

import (
	"strings"
	"time"

	"github.com/nfrund/safeonboard/internal/pubsub"
)

// Sign-in channels reported on VisitorLoggedIn.
const (
	ChannelEmail = "email"
	ChannelPhone = "phone"
)

// VisitorLoggedIn is published after a login form validates and a wizard
// has been started for the visitor. Contact holds the email address for
// email logins and is empty for phone logins.
type VisitorLoggedIn struct {
	WizardID   string    `json:"wizard_id"`
	Channel    string    `json:"channel"`
	Contact    string    `json:"contact,omitempty"`
	LoggedInAt time.Time `json:"logged_in_at"`
}

// VisitorLoggedInEvent is the topic for successful logins.
var VisitorLoggedInEvent = pubsub.NewEvent[VisitorLoggedIn](
	"onboarding.visitor.logged_in",
	"A visitor passed the login form and started onboarding",
)

func channelOf(identifier string) string {
	if strings.Contains(identifier, "@") {
		return ChannelEmail
	}
	return ChannelPhone
}
