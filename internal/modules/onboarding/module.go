// Package onboarding mounts the provider onboarding wizard: the step pages,
// multi-select toggles, file uploads with profile picture previews, and
// the hand-off of completed profiles onto the event bus.
package onboarding

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/safeonboard/internal/config"
	"github.com/nfrund/safeonboard/internal/module"
	"github.com/nfrund/safeonboard/internal/pubsub"
	"github.com/nfrund/safeonboard/internal/rendering"
	"github.com/nfrund/safeonboard/internal/storage"
	"github.com/nfrund/safeonboard/internal/wizard"
	"github.com/nfrund/safeonboard/internal/wizardcache"
	"github.com/samber/do/v2"
)

// OnboardingModule implements module.Module for the wizard.
type OnboardingModule struct {
	module.BaseModule
	logger *slog.Logger
}

// New creates the onboarding module.
func New() *OnboardingModule {
	return &OnboardingModule{logger: slog.Default()}
}

// Name returns the module name.
func (m *OnboardingModule) Name() string {
	return "onboarding"
}

// Register provides the step machine, the wizard registry and the HTTP
// handler. The login module relies on the registry to start wizards.
func (m *OnboardingModule) Register(i do.Injector) error {
	do.Provide(i, func(i do.Injector) (*wizard.Machine, error) {
		return wizard.NewMachine(wizard.DefaultCatalog()), nil
	})
	do.Provide(i, NewRegistry)
	do.Provide(i, func(i do.Injector) (*Handler, error) {
		return NewHandler(Dependencies{
			Registry:    do.MustInvoke[*wizardcache.Registry](i),
			Attachments: do.MustInvoke[*storage.Attachments](i),
			Renderer:    do.MustInvoke[*rendering.UniversalRenderer](i),
		}), nil
	})
	return nil
}

// Boot mounts the routes and starts the completed profile subscriber.
func (m *OnboardingModule) Boot(ctx context.Context, g *echo.Group, i do.Injector) error {
	m.logger = do.MustInvoke[*slog.Logger](i).With("module", m.Name())
	bus := do.MustInvoke[*pubsub.WatermillBridge](i)

	err := pubsub.Subscribe(ctx, bus, ProfileCompletedEvent, func(ctx context.Context, wizardID string, p ProfileCompleted) error {
		m.logger.Info("Profile submitted for verification",
			"wizard_id", wizardID,
			"organization", p.OrganizationName,
			"country", p.Country,
			"services", len(p.ServiceTypes),
		)
		return nil
	})
	if err != nil {
		return err
	}

	m.logger.Info("Booting OnboardingModule: Setting up routes...")
	do.MustInvoke[*Handler](i).Routes(g)
	return nil
}

// Shutdown is called on application termination. The registry itself is
// shut down by the container.
func (m *OnboardingModule) Shutdown(ctx context.Context) error {
	m.logger.Info("Shutting down OnboardingModule...")
	return nil
}

// NewRegistry builds the wizard registry. Every wizard shares one machine,
// one preview decoder reading from the attachment store, and a coordinator
// that publishes ProfileCompletedEvent. Evicted wizards have their uploads
// purged.
func NewRegistry(i do.Injector) (*wizardcache.Registry, error) {
	cfg := do.MustInvoke[config.Provider](i)
	logger := do.MustInvoke[*slog.Logger](i)
	bus := do.MustInvoke[*pubsub.WatermillBridge](i)
	attachments := do.MustInvoke[*storage.Attachments](i)
	machine := do.MustInvoke[*wizard.Machine](i)

	coordinator := wizard.NewCoordinator(func(ctx context.Context, sub wizard.Submission) {
		if err := pubsub.Publish(ctx, bus, ProfileCompletedEvent, sub.WizardID, NewProfileCompleted(sub)); err != nil {
			logger.Error("Failed to publish completed profile", "wizard_id", sub.WizardID, "error", err)
		}
	})
	decoder := wizard.NewDataURLDecoder(attachments, 0)

	factory := func(id string) *wizard.Wizard {
		return wizard.New(id, machine,
			wizard.WithDecoder(decoder),
			wizard.WithCoordinator(coordinator),
			wizard.WithLogger(logger),
		)
	}
	purge := func(id string) {
		if err := attachments.Purge(context.Background(), id); err != nil {
			logger.Warn("Failed to purge wizard uploads", "wizard_id", id, "error", err)
		}
	}

	return wizardcache.New(cfg.GetWizardTTL(), factory,
		wizardcache.WithLogger(logger),
		wizardcache.WithEvictHook(purge),
	), nil
}
