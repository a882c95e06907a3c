package notifications

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/nfrund/safeonboard/internal/email"
	"github.com/nfrund/safeonboard/internal/modules/login"
	"github.com/nfrund/safeonboard/internal/modules/onboarding"
	"github.com/nfrund/safeonboard/internal/pubsub"
	"github.com/patrickmn/go-cache"
)

// ReceivedSubject is the subject of the submission acknowledgement.
const ReceivedSubject = "We received your SafeOnboard profile"

// Notifier emails visitors who logged in with an email address once their
// profile is submitted. Contacts are remembered per wizard from login
// events and forgotten after ttl.
type Notifier struct {
	sender   email.Sender
	contacts *cache.Cache
	logger   *slog.Logger
}

// NewNotifier creates a Notifier.
func NewNotifier(sender email.Sender, ttl time.Duration, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		sender:   sender,
		contacts: cache.New(ttl, ttl),
		logger:   logger,
	}
}

// Start subscribes to login and completion events.
func (n *Notifier) Start(ctx context.Context, sub pubsub.Subscriber) error {
	if err := pubsub.Subscribe(ctx, sub, login.VisitorLoggedInEvent, n.OnLogin); err != nil {
		return err
	}
	return pubsub.Subscribe(ctx, sub, onboarding.ProfileCompletedEvent, n.OnProfileCompleted)
}

// OnLogin remembers the email address of a wizard's visitor.
func (n *Notifier) OnLogin(ctx context.Context, wizardID string, ev login.VisitorLoggedIn) error {
	if ev.Contact == "" {
		return nil
	}
	n.contacts.Set(wizardID, ev.Contact, cache.DefaultExpiration)
	return nil
}

// OnProfileCompleted sends the acknowledgement. Send failures are logged
// and not retried.
func (n *Notifier) OnProfileCompleted(ctx context.Context, wizardID string, p onboarding.ProfileCompleted) error {
	v, ok := n.contacts.Get(wizardID)
	if !ok {
		n.logger.Debug("No email contact for completed profile", "wizard_id", wizardID)
		return nil
	}
	to := v.(string)

	var body strings.Builder
	if err := ReceivedEmail(p).Render(&body); err != nil {
		return err
	}
	if err := n.sender.Send(ctx, email.Message{To: to, Subject: ReceivedSubject, HTML: body.String()}); err != nil {
		n.logger.Error("Failed to send submission email", "wizard_id", wizardID, "error", err)
		return nil
	}
	n.contacts.Delete(wizardID)
	n.logger.Info("Submission email sent", "wizard_id", wizardID)
	return nil
}
