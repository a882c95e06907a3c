package view_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/safeonboard/internal/view"
	"github.com/stretchr/testify/assert"
)

const testSessionSecret = "a-very-secret-key-for-testing-!"

func setupTestContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	store := sessions.NewCookieStore([]byte(testSessionSecret))
	sessionMiddleware := session.Middleware(store)

	// Capture the context from inside the middleware so the session is set up.
	var c echo.Context
	handler := func(ctx echo.Context) error { c = ctx; return nil }
	sessionMiddleware(handler)(e.NewContext(req, rec))

	return c, rec
}

func TestFlashMessages(t *testing.T) {
	t.Run("success message", func(t *testing.T) {
		c, _ := setupTestContext()

		view.SetFlashSuccess(c, "Welcome back!")

		flashes := view.GetFlashData(c)
		assert.Equal(t, []string{"Welcome back!"}, flashes.Success)
		assert.Empty(t, flashes.Error)
		assert.False(t, flashes.Empty())

		again := view.GetFlashData(c)
		assert.True(t, again.Empty(), "flashes are cleared once read")
	})

	t.Run("error messages keep their order", func(t *testing.T) {
		c, _ := setupTestContext()

		view.SetFlashError(c, "Your onboarding session expired.")
		view.SetFlashError(c, "Please start again.")

		flashes := view.GetFlashData(c)
		assert.Equal(t, []string{"Your onboarding session expired.", "Please start again."}, flashes.Error)
		assert.Empty(t, flashes.Success)
	})

	t.Run("nothing queued", func(t *testing.T) {
		c, _ := setupTestContext()
		assert.True(t, view.GetFlashData(c).Empty())
	})
}
