package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// DefaultLoginRate is the sustained number of login attempts per second
// allowed from one client address.
const DefaultLoginRate = 10

// RateLimiter throttles requests per client IP with an in-memory token
// bucket. Rejected requests get a 429 with a plain text body.
func RateLimiter(perSecond rate.Limit) echo.MiddlewareFunc {
	if perSecond <= 0 {
		perSecond = DefaultLoginRate
	}
	config := middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStore(perSecond),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			FromContext(c.Request().Context()).Warn("rate limit exceeded", "client_ip", identifier, "path", c.Path())
			return c.String(http.StatusTooManyRequests, "Too many attempts. Please wait a moment and try again.")
		},
	}
	return middleware.RateLimiterWithConfig(config)
}
