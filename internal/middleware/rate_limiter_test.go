package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter(t *testing.T) {
	e := echo.New()
	e.POST("/login", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	}, RateLimiter(0))

	post := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	t.Run("a single attempt passes", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, post("192.0.2.1:1234").Code)
	})

	t.Run("a burst beyond the limit is rejected", func(t *testing.T) {
		for i := 0; i < DefaultLoginRate; i++ {
			require.Equal(t, http.StatusOK, post("192.0.2.2:1234").Code, "attempt %d", i+1)
		}
		rec := post("192.0.2.2:1234")
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Contains(t, rec.Body.String(), "Too many attempts")
	})

	t.Run("other clients are unaffected", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, post("192.0.2.3:1234").Code)
	})
}
