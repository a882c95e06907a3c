package onboarding

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/safeonboard/internal/config"
	"github.com/nfrund/safeonboard/internal/handlers"
	"github.com/nfrund/safeonboard/internal/middleware"
	"github.com/nfrund/safeonboard/internal/pubsub"
	"github.com/nfrund/safeonboard/internal/rendering"
	"github.com/nfrund/safeonboard/internal/storage"
	"github.com/nfrund/safeonboard/internal/wizard"
	"github.com/nfrund/safeonboard/internal/wizardcache"
	"github.com/samber/do/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const (
	testSecret    = "a-very-secret-key-for-testing-!"
	testUploadMax = 1024
)

// harness runs the module inside a real container and echo instance and
// carries cookies between requests like a browser.
type harness struct {
	t           *testing.T
	e           *echo.Echo
	registry    *wizardcache.Registry
	attachments *storage.Attachments
	completed   chan ProfileCompleted
	cookies     map[string]*http.Cookie
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	cfg, err := config.FromEnv(func(string) string { return "" })
	require.NoError(t, err)

	i := do.New()
	do.ProvideValue[config.Provider](i, cfg)
	do.ProvideValue(i, slog.New(slog.NewTextHandler(io.Discard, nil)))
	bus := pubsub.NewWatermillBridge(nil)
	do.ProvideValue(i, bus)
	attachments := storage.NewAttachments(storage.NewAferoStore(afero.NewMemMapFs()), testUploadMax)
	do.ProvideValue(i, attachments)
	do.ProvideValue(i, rendering.NewUniversalRenderer())

	mod := New()
	require.NoError(t, mod.Register(i))

	e := echo.New()
	e.Validator = handlers.NewValidator()
	e.Use(session.Middleware(middleware.NewCookieStore(testSecret, false)))
	e.POST("/test/login", func(c echo.Context) error {
		v := middleware.Visitor{Identifier: "amina@safehaven.org", WizardID: c.FormValue("wizard")}
		if err := middleware.SaveVisitor(c, v); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	})

	ctx, cancel := context.WithCancel(context.Background())
	completed := make(chan ProfileCompleted, 1)
	require.NoError(t, pubsub.Subscribe(ctx, bus, ProfileCompletedEvent, func(_ context.Context, _ string, p ProfileCompleted) error {
		completed <- p
		return nil
	}))
	require.NoError(t, mod.Boot(ctx, e.Group(""), i))

	t.Cleanup(func() {
		cancel()
		_ = mod.Shutdown(context.Background())
		i.Shutdown()
	})

	return &harness{
		t:           t,
		e:           e,
		registry:    do.MustInvoke[*wizardcache.Registry](i),
		attachments: attachments,
		completed:   completed,
		cookies:     map[string]*http.Cookie{},
	}
}

func (h *harness) send(req *http.Request, htmx bool) *httptest.ResponseRecorder {
	for _, c := range h.cookies {
		req.AddCookie(c)
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	rec := httptest.NewRecorder()
	h.e.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(h.cookies, c.Name)
			continue
		}
		h.cookies[c.Name] = c
	}
	return rec
}

func (h *harness) get(path string) *httptest.ResponseRecorder {
	return h.send(httptest.NewRequest(http.MethodGet, path, nil), false)
}

func (h *harness) post(path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return h.send(req, htmx)
}

func (h *harness) upload(field wizard.Field, filename string, content []byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(uploadFormField, filename)
	require.NoError(h.t, err)
	_, err = part.Write(content)
	require.NoError(h.t, err)
	require.NoError(h.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, PathAttachments+"/"+string(field), &body)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	return h.send(req, true)
}

// login passes the login form and opens the wizard page.
func (h *harness) login() *wizard.Wizard {
	h.t.Helper()
	rec := h.post("/test/login", url.Values{}, false)
	require.Equal(h.t, http.StatusNoContent, rec.Code)
	rec = h.get("/onboarding")
	require.Equal(h.t, http.StatusOK, rec.Code)
	return h.wizard()
}

// wizard resolves the session's wizard through the state endpoint.
func (h *harness) wizard() *wizard.Wizard {
	h.t.Helper()
	rec := h.get(PathState)
	require.Equal(h.t, http.StatusOK, rec.Code)
	var state handlers.StateResponse
	require.NoError(h.t, json.Unmarshal(rec.Body.Bytes(), &state))
	w, err := h.registry.Get(state.WizardID)
	require.NoError(h.t, err)
	return w
}

var stepForms = map[int]url.Values{
	1: {
		"title":            {"Dr"},
		"firstName":        {"Amina"},
		"lastName":         {"Otieno"},
		"gender":           {"Female"},
		"idPassportNumber": {"A1234567"},
		"educationRank":    {"Master's Degree"},
	},
	2: {
		"organizationName":  {"Safe Haven"},
		"yearsOfExperience": {"7"},
		"clientCapacity":    {"11-25 clients per month"},
		"hoursOfOperation":  {"24/7"},
	},
	3: {
		"country": {"Kenya"},
		"county":  {"Nakuru"},
		"town":    {"Naivasha"},
	},
}

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

// submit walks every step with valid data and returns the published event.
func (h *harness) submit(w *wizard.Wizard) ProfileCompleted {
	h.t.Helper()
	for step := 1; step <= 3; step++ {
		h.post(PathNext, stepForms[step], true)
	}
	h.post(PathToggle, url.Values{"field": {"serviceType"}, "value": {"Therapy"}}, true)
	h.post(PathToggle, url.Values{"field": {"clientele"}, "value": {"Adults"}}, true)
	h.post(PathNext, url.Values{}, true)
	h.upload(wizard.FieldCredentials, "licence.pdf", []byte("%PDF-1.4 licence"))
	rec := h.post(PathNext, url.Values{}, true)
	require.Equal(h.t, "/onboarding/complete", rec.Header().Get("HX-Redirect"))

	select {
	case p := <-h.completed:
		require.Equal(h.t, w.ID(), p.WizardID)
		return p
	case <-time.After(2 * time.Second):
		h.t.Fatal("completed profile was not published")
		return ProfileCompleted{}
	}
}
