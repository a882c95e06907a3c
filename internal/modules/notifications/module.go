// Package notifications emails visitors when their profile has been
// submitted.
package notifications

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/safeonboard/internal/config"
	"github.com/nfrund/safeonboard/internal/email"
	"github.com/nfrund/safeonboard/internal/module"
	"github.com/nfrund/safeonboard/internal/pubsub"
	"github.com/samber/do/v2"
)

// NotificationsModule implements module.Module. It mounts no routes.
type NotificationsModule struct {
	module.BaseModule
}

// New creates the notifications module.
func New() *NotificationsModule {
	return &NotificationsModule{}
}

// Name returns the module name.
func (m *NotificationsModule) Name() string {
	return "notifications"
}

// Register provides the email sender and the notifier.
func (m *NotificationsModule) Register(i do.Injector) error {
	do.Provide(i, func(i do.Injector) (email.Sender, error) {
		return email.NewSender(do.MustInvoke[config.Provider](i), do.MustInvoke[*slog.Logger](i))
	})
	do.Provide(i, func(i do.Injector) (*Notifier, error) {
		cfg := do.MustInvoke[config.Provider](i)
		logger := do.MustInvoke[*slog.Logger](i).With("module", "notifications")
		// Contacts must outlive the wizard they belong to.
		return NewNotifier(do.MustInvoke[email.Sender](i), 2*cfg.GetWizardTTL(), logger), nil
	})
	return nil
}

// Boot starts the event subscribers.
func (m *NotificationsModule) Boot(ctx context.Context, g *echo.Group, i do.Injector) error {
	return do.MustInvoke[*Notifier](i).Start(ctx, do.MustInvoke[*pubsub.WatermillBridge](i))
}
