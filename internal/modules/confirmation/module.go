// Package confirmation shows the page visitors land on after submitting
// their profile.
package confirmation

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/safeonboard/internal/handlers"
	"github.com/nfrund/safeonboard/internal/middleware"
	"github.com/nfrund/safeonboard/internal/module"
	"github.com/nfrund/safeonboard/internal/rendering"
	"github.com/nfrund/safeonboard/internal/view"
	"github.com/samber/do/v2"
)

// ConfirmationModule implements module.Module for the completion page.
type ConfirmationModule struct {
	module.BaseModule
}

// New creates the confirmation module.
func New() *ConfirmationModule {
	return &ConfirmationModule{}
}

// Name returns the module name.
func (m *ConfirmationModule) Name() string {
	return "confirmation"
}

// Boot mounts GET /onboarding/complete for visitors who finished.
func (m *ConfirmationModule) Boot(ctx context.Context, g *echo.Group, i do.Injector) error {
	renderer := do.MustInvoke[*rendering.UniversalRenderer](i)
	g.GET(handlers.PathComplete, func(c echo.Context) error {
		page := view.Base("Profile Setup Complete", view.GetFlashData(c), view.AdaptGomponentToTempl(Page()))
		return renderer.RenderPage(c, http.StatusOK, page)
	}, middleware.RequireCompletion(handlers.PathOnboarding))
	return nil
}
