package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/safeonboard/internal/middleware"
)

// Paths of the main pages, shared by every module that redirects.
const (
	PathLogin      = middleware.LoginPath
	PathOnboarding = "/onboarding"
	PathComplete   = "/onboarding/complete"
)

// HomeHandler sends visitors to the page matching their progress.
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// HomeGet handles GET /.
func (h *HomeHandler) HomeGet(c echo.Context) error {
	v := middleware.CurrentVisitor(c)
	switch {
	case !v.LoggedIn():
		return c.Redirect(http.StatusSeeOther, PathLogin)
	case v.Completed:
		return c.Redirect(http.StatusSeeOther, PathComplete)
	default:
		return c.Redirect(http.StatusSeeOther, PathOnboarding)
	}
}

// Counter reports a number of live items, e.g. open wizards.
type Counter interface {
	Len() int
}

// HealthHandler answers liveness probes.
type HealthHandler struct {
	wizards Counter
}

// NewHealthHandler creates a HealthHandler. wizards may be nil.
func NewHealthHandler(wizards Counter) *HealthHandler {
	return &HealthHandler{wizards: wizards}
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Wizards int    `json:"wizards"`
}

// HealthGet handles GET /health.
func (h *HealthHandler) HealthGet(c echo.Context) error {
	resp := HealthResponse{Status: "ok"}
	if h.wizards != nil {
		resp.Wizards = h.wizards.Len()
	}
	return c.JSON(http.StatusOK, resp)
}
