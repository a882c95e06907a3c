package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// VisitorContextKey is the echo context key under which guards store the
// current Visitor.
const VisitorContextKey = "visitor"

// LoginPath is where guests are sent.
const LoginPath = "/login"

// RequireLogin lets only visitors who passed the login form through.
// htmx requests get an HX-Redirect header instead of a 303 so the whole
// page navigates.
func RequireLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v := CurrentVisitor(c)
			if !v.LoggedIn() {
				FromContext(c.Request().Context()).Debug("guest redirected to login", "path", c.Path())
				return Redirect(c, LoginPath)
			}
			c.Set(VisitorContextKey, v)
			return next(c)
		}
	}
}

// RequireCompletion lets only visitors who finished onboarding through
// and sends everyone else to fallback.
func RequireCompletion(fallback string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v := CurrentVisitor(c)
			if !v.LoggedIn() {
				return Redirect(c, LoginPath)
			}
			if !v.Completed {
				return Redirect(c, fallback)
			}
			c.Set(VisitorContextKey, v)
			return next(c)
		}
	}
}

// RequireOnboarding lets only visitors who are still filling in the wizard
// through. Visitors who already submitted their profile are sent to done,
// so a finished wizard cannot be changed or submitted again.
func RequireOnboarding(done string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v := CurrentVisitor(c)
			if !v.LoggedIn() {
				return Redirect(c, LoginPath)
			}
			if v.Completed {
				FromContext(c.Request().Context()).Debug("finished visitor redirected", "path", c.Path())
				return Redirect(c, done)
			}
			c.Set(VisitorContextKey, v)
			return next(c)
		}
	}
}

// VisitorFrom returns the Visitor stored by a guard.
func VisitorFrom(c echo.Context) Visitor {
	v, _ := c.Get(VisitorContextKey).(Visitor)
	return v
}

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// Redirect sends the client to path, using HX-Redirect for htmx requests.
func Redirect(c echo.Context, path string) error {
	if IsHTMX(c) {
		c.Response().Header().Set("HX-Redirect", path)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, path)
}
