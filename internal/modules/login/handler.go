package login

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/safeonboard/internal/handlers"
	loginform "github.com/nfrund/safeonboard/internal/login"
	"github.com/nfrund/safeonboard/internal/middleware"
	"github.com/nfrund/safeonboard/internal/pubsub"
	"github.com/nfrund/safeonboard/internal/rendering"
	"github.com/nfrund/safeonboard/internal/view"
	"github.com/nfrund/safeonboard/internal/wizardcache"
)

// Paths served by this module.
const (
	PathLogin  = handlers.PathLogin
	PathLogout = "/logout"
)

// Dependencies holds the services the Handler requires.
type Dependencies struct {
	Registry  *wizardcache.Registry
	Publisher pubsub.Publisher
	Renderer  rendering.Renderer
}

// Handler serves the login form.
type Handler struct {
	registry  *wizardcache.Registry
	publisher pubsub.Publisher
	renderer  rendering.Renderer
}

// NewHandler creates a Handler.
func NewHandler(deps Dependencies) *Handler {
	return &Handler{
		registry:  deps.Registry,
		publisher: deps.Publisher,
		renderer:  deps.Renderer,
	}
}

// LoginGet renders the login form, or forwards visitors who already
// passed it.
func (h *Handler) LoginGet(c echo.Context) error {
	v := middleware.CurrentVisitor(c)
	if v.LoggedIn() {
		if v.Completed {
			return c.Redirect(http.StatusSeeOther, handlers.PathComplete)
		}
		return c.Redirect(http.StatusSeeOther, handlers.PathOnboarding)
	}
	return h.render(c, http.StatusOK, formData{})
}

// LoginPost validates the form. On success a new wizard is started and
// the visitor is sent to the first step; otherwise the form is shown
// again with its errors.
func (h *Handler) LoginPost(c echo.Context) error {
	var creds loginform.Credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form submission")
	}

	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	var identifier string
	errs := loginform.Attempt(ctx, creds, func(_ context.Context, id string) {
		identifier = id
	})
	if len(errs) > 0 {
		logger.Debug("login form rejected", "fields", len(errs))
		return h.render(c, rendering.StatusInvalidForm, formData{Identifier: creds.Identifier, Errors: errs})
	}

	if previous := middleware.CurrentVisitor(c); previous.WizardID != "" {
		h.registry.Delete(previous.WizardID)
	}
	w := h.registry.Create()
	if err := middleware.SaveVisitor(c, middleware.Visitor{Identifier: identifier, WizardID: w.ID()}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	event := VisitorLoggedIn{WizardID: w.ID(), Channel: channelOf(identifier), LoggedInAt: time.Now().UTC()}
	if event.Channel == ChannelEmail {
		event.Contact = identifier
	}
	if err := pubsub.Publish(ctx, h.publisher, VisitorLoggedInEvent, w.ID(), event); err != nil {
		logger.Error("Failed to publish login event", "error", err)
	}
	logger.Info("Visitor logged in", "wizard_id", w.ID(), "channel", event.Channel)

	view.SetFlashSuccess(c, "Welcome! Let's set up your provider profile.")
	return middleware.Redirect(c, handlers.PathOnboarding)
}

// LogoutPost drops the visitor's wizard and session.
func (h *Handler) LogoutPost(c echo.Context) error {
	v := middleware.CurrentVisitor(c)
	if v.WizardID != "" {
		h.registry.Delete(v.WizardID)
	}
	if err := middleware.ClearVisitor(c); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return middleware.Redirect(c, PathLogin)
}

func (h *Handler) render(c echo.Context, status int, data formData) error {
	page := view.Base("Log in", view.GetFlashData(c), view.AdaptGomponentToTempl(Form(data)))
	return h.renderer.RenderPage(c, status, page)
}
