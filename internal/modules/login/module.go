// Package login mounts the sign-in form that precedes onboarding.
package login

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/safeonboard/internal/middleware"
	"github.com/nfrund/safeonboard/internal/module"
	"github.com/nfrund/safeonboard/internal/pubsub"
	"github.com/nfrund/safeonboard/internal/rendering"
	"github.com/nfrund/safeonboard/internal/wizardcache"
	"github.com/samber/do/v2"
)

// LoginModule implements module.Module for the login pages.
type LoginModule struct {
	module.BaseModule
}

// New creates the login module.
func New() *LoginModule {
	return &LoginModule{}
}

// Name returns the module name.
func (m *LoginModule) Name() string {
	return "login"
}

// Boot mounts the login routes. The wizard registry is provided by the
// onboarding module.
func (m *LoginModule) Boot(ctx context.Context, g *echo.Group, i do.Injector) error {
	do.MustInvoke[*slog.Logger](i).Info("Booting LoginModule: Setting up routes...")

	handler := NewHandler(Dependencies{
		Registry:  do.MustInvoke[*wizardcache.Registry](i),
		Publisher: do.MustInvoke[*pubsub.WatermillBridge](i),
		Renderer:  do.MustInvoke[*rendering.UniversalRenderer](i),
	})
	g.GET(PathLogin, handler.LoginGet)
	g.POST(PathLogin, handler.LoginPost, middleware.RateLimiter(middleware.DefaultLoginRate))
	g.POST(PathLogout, handler.LogoutPost)
	return nil
}
