package middleware

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

// SessionName is the cookie holding the onboarding session.
const SessionName = "onboard-session"

const (
	keyIdentifier = "identifier"
	keyWizardID   = "wizard_id"
	keyCompleted  = "completed"
)

// Visitor is what the session knows about the current browser.
type Visitor struct {
	Identifier string
	WizardID   string
	Completed  bool
}

// LoggedIn reports whether the login form has been passed.
func (v Visitor) LoggedIn() bool { return v.Identifier != "" }

// NewCookieStore builds the session store used by the server.
func NewCookieStore(secret string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// CurrentVisitor reads the visitor from the session. A missing or
// undecodable session yields the zero Visitor.
func CurrentVisitor(c echo.Context) Visitor {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return Visitor{}
	}
	v := Visitor{}
	v.Identifier, _ = sess.Values[keyIdentifier].(string)
	v.WizardID, _ = sess.Values[keyWizardID].(string)
	v.Completed, _ = sess.Values[keyCompleted].(bool)
	return v
}

// SaveVisitor writes v to the session cookie.
func SaveVisitor(c echo.Context, v Visitor) error {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return err
	}
	sess.Values[keyIdentifier] = v.Identifier
	sess.Values[keyWizardID] = v.WizardID
	sess.Values[keyCompleted] = v.Completed
	return sess.Save(c.Request(), c.Response())
}

// ClearVisitor expires the session cookie.
func ClearVisitor(c echo.Context) error {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return err
	}
	sess.Values = map[interface{}]interface{}{}
	sess.Options.MaxAge = -1
	return sess.Save(c.Request(), c.Response())
}
