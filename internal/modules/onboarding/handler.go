package onboarding

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/safeonboard/internal/domain"
	"github.com/nfrund/safeonboard/internal/handlers"
	"github.com/nfrund/safeonboard/internal/middleware"
	"github.com/nfrund/safeonboard/internal/rendering"
	"github.com/nfrund/safeonboard/internal/storage"
	"github.com/nfrund/safeonboard/internal/view"
	"github.com/nfrund/safeonboard/internal/wizard"
	"github.com/nfrund/safeonboard/internal/wizardcache"
)

// Route paths below the onboarding prefix.
const (
	PathNext        = handlers.PathOnboarding + "/next"
	PathBack        = handlers.PathOnboarding + "/back"
	PathToggle      = handlers.PathOnboarding + "/toggle"
	PathAttachments = handlers.PathOnboarding + "/attachments"
	PathPreview     = handlers.PathOnboarding + "/preview"
	PathState       = handlers.PathOnboarding + "/state"
)

// uploadFormField is the multipart part carrying the file.
const uploadFormField = "file"

// multipartOverhead is the body allowance on top of the upload limit for
// part headers and boundaries.
const multipartOverhead = 64 << 10

const expiredMessage = "Your onboarding session expired. Please start again."

// Dependencies holds the services the Handler requires.
type Dependencies struct {
	Registry    *wizardcache.Registry
	Attachments *storage.Attachments
	Renderer    rendering.Renderer
}

// Handler serves the wizard pages and fragments.
type Handler struct {
	registry    *wizardcache.Registry
	attachments *storage.Attachments
	renderer    rendering.Renderer
}

// NewHandler creates a Handler.
func NewHandler(deps Dependencies) *Handler {
	return &Handler{
		registry:    deps.Registry,
		attachments: deps.Attachments,
		renderer:    deps.Renderer,
	}
}

// Routes mounts the wizard routes. Every route requires a passed login and
// the routes that change the wizard are closed once the profile is submitted.
func (h *Handler) Routes(g *echo.Group) {
	guard := middleware.RequireLogin()
	open := middleware.RequireOnboarding(handlers.PathComplete)
	bodyLimit := echomw.BodyLimit(fmt.Sprintf("%dB", h.attachments.MaxSize()+multipartOverhead))

	g.GET(handlers.PathOnboarding, h.PageGet, guard)
	g.POST(PathNext, h.NextPost, open)
	g.POST(PathBack, h.BackPost, open)
	g.POST(PathToggle, h.TogglePost, open)
	g.POST(PathAttachments+"/:field", h.AttachmentPost, open, bodyLimit)
	g.GET(PathPreview, h.PreviewGet, guard)
	g.GET(PathState, h.StateGet, guard)
}

// PageGet renders the current step. A visitor without a live wizard gets a
// fresh one, and the session is updated to point at it.
func (h *Handler) PageGet(c echo.Context) error {
	v := middleware.VisitorFrom(c)
	if v.Completed {
		return middleware.Redirect(c, handlers.PathComplete)
	}

	w, created := h.registry.GetOrCreate(v.WizardID)
	if created {
		if v.WizardID != "" {
			view.SetFlashError(c, expiredMessage)
		}
		v.WizardID = w.ID()
		if err := middleware.SaveVisitor(c, v); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
	}

	page := view.Base("Profile Setup", view.GetFlashData(c),
		view.AdaptGomponentToTempl(Page(newPanelData(w, ""))))
	return h.renderer.RenderPage(c, http.StatusOK, page)
}

// NextPost saves the submitted step fields and tries to advance.
func (h *Handler) NextPost(c echo.Context) error {
	w, ok := h.current(c)
	if !ok {
		return h.expired(c)
	}
	if err := applyStepForm(c, w); err != nil {
		return h.respond(c, w, err)
	}

	if w.Next(c.Request().Context()) == wizard.Completed {
		v := middleware.VisitorFrom(c)
		v.Completed = true
		if err := middleware.SaveVisitor(c, v); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		view.SetFlashSuccess(c, "Your profile has been submitted.")
		return middleware.Redirect(c, handlers.PathComplete)
	}
	return h.respond(c, w, nil)
}

// BackPost saves the submitted step fields and returns to the previous
// step. Values are kept so nothing typed is lost. A value that cannot be
// saved is reported but never blocks going back.
func (h *Handler) BackPost(c echo.Context) error {
	w, ok := h.current(c)
	if !ok {
		return h.expired(c)
	}
	formErr := applyStepForm(c, w)
	w.Back()
	return h.respond(c, w, formErr)
}

// TogglePost flips one option of a multi-select field.
func (h *Handler) TogglePost(c echo.Context) error {
	var req handlers.ToggleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Field and value are required")
	}

	w, ok := h.current(c)
	if !ok {
		return h.expired(c)
	}

	field := wizard.Field(req.Field)
	spec, known := w.Catalog().Spec(field)
	if !known || spec.Kind() != wizard.KindSet {
		return echo.NewHTTPError(http.StatusBadRequest, domain.ErrNotMultiSelect.Error())
	}
	if !spec.HasOption(req.Value) {
		return echo.NewHTTPError(http.StatusBadRequest, domain.ErrUnknownOption.Error())
	}
	if err := w.Toggle(field, req.Value); err != nil {
		return h.respond(c, w, err)
	}
	return h.respond(c, w, nil)
}

// AttachmentPost stores an uploaded file in an attachment field, or clears
// the field when no file is sent or clear=true. The replaced upload is
// removed from the store.
func (h *Handler) AttachmentPost(c echo.Context) error {
	field := wizard.Field(c.Param("field"))
	kind, err := wizard.KindOf(field)
	if err != nil || kind != wizard.KindAttachment {
		return echo.NewHTTPError(http.StatusNotFound, "Unknown upload field")
	}

	w, ok := h.current(c)
	if !ok {
		return h.expired(c)
	}
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)
	previous := w.Snapshot().Attachment(field)

	clearSlot := c.FormValue("clear") == "true"
	fh, err := c.FormFile(uploadFormField)
	if clearSlot || errors.Is(err, http.ErrMissingFile) {
		if err := w.Attach(field, nil); err != nil {
			return h.respond(c, w, err)
		}
		h.discard(c, previous)
		return h.respond(c, w, nil)
	}
	if err != nil {
		logger.Warn("Failed to read upload", "field", field, "error", err)
		return h.respond(c, w, fmt.Errorf("%w: %v", domain.ErrFieldType, err))
	}
	if fh.Size > h.attachments.MaxSize() {
		return h.respond(c, w, domain.ErrUploadTooLarge)
	}

	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	stored, err := h.attachments.Put(ctx, w.ID(), string(field), fh.Filename, fh.Header.Get(echo.HeaderContentType), src)
	if err != nil {
		return h.respond(c, w, err)
	}
	att := &wizard.FileAttachment{
		Ref:      stored.StoragePath,
		Name:     stored.Filename,
		Size:     stored.Size,
		MIMEType: stored.MIMEType,
	}
	if err := w.Attach(field, att); err != nil {
		_ = h.attachments.Remove(ctx, stored.StoragePath)
		return h.respond(c, w, err)
	}
	logger.Info("Attachment stored", "wizard_id", w.ID(), "field", field, "size", stored.Size)
	h.discard(c, previous)
	return h.respond(c, w, nil)
}

// PreviewGet renders the profile picture slot. While a decode is running
// the fragment polls itself.
func (h *Handler) PreviewGet(c echo.Context) error {
	w, ok := h.current(c)
	if !ok {
		return h.expired(c)
	}
	return h.renderer.RenderPage(c, http.StatusOK, ProfilePreview(w.Snapshot().ProfilePicture, w.PreviewPending()))
}

// StateGet returns the wizard as JSON.
func (h *Handler) StateGet(c echo.Context) error {
	w, ok := h.current(c)
	if !ok {
		return c.JSON(http.StatusNotFound, handlers.ErrorResponse{
			Code:    "wizard_not_found",
			Message: domain.ErrWizardNotFound.Error(),
		})
	}
	return c.JSON(http.StatusOK, handlers.NewStateResponse(w))
}

func (h *Handler) current(c echo.Context) (*wizard.Wizard, bool) {
	v := middleware.VisitorFrom(c)
	w, err := h.registry.Get(v.WizardID)
	if err != nil {
		middleware.FromContext(c.Request().Context()).Debug("wizard lookup failed", "error", err)
		return nil, false
	}
	return w, true
}

func (h *Handler) expired(c echo.Context) error {
	view.SetFlashError(c, expiredMessage)
	return middleware.Redirect(c, handlers.PathOnboarding)
}

// respond renders the wizard panel for htmx requests and redirects plain
// form posts back to the page. A non-nil err becomes a notice; unexpected
// errors go to the error handler.
func (h *Handler) respond(c echo.Context, w *wizard.Wizard, err error) error {
	notice := ""
	if err != nil {
		msg, known := noticeFor(err, h.attachments.MaxSize())
		if !known {
			return err
		}
		notice = msg
	}

	if middleware.IsHTMX(c) {
		return h.renderer.RenderPage(c, http.StatusOK, Panel(newPanelData(w, notice)))
	}
	if notice != "" {
		view.SetFlashError(c, notice)
	}
	return c.Redirect(http.StatusSeeOther, handlers.PathOnboarding)
}

func (h *Handler) discard(c echo.Context, att *wizard.FileAttachment) {
	if att == nil {
		return
	}
	if err := h.attachments.Remove(c.Request().Context(), att.Ref); err != nil {
		middleware.FromContext(c.Request().Context()).Warn("Failed to remove replaced upload", "ref", att.Ref, "error", err)
	}
}

// noticeFor maps domain errors to messages shown to the visitor.
func noticeFor(err error, maxSize int64) (string, bool) {
	switch {
	case errors.Is(err, domain.ErrUploadTooLarge):
		return "File is too large. The limit is " + formatSize(maxSize) + ".", true
	case errors.Is(err, domain.ErrUnknownOption):
		return "Please choose one of the listed options.", true
	case errors.Is(err, domain.ErrFieldType),
		errors.Is(err, domain.ErrUnknownField),
		errors.Is(err, domain.ErrNotAttachment):
		return "The submitted value could not be used.", true
	default:
		return "", false
	}
}

func formatSize(n int64) string {
	const mib = 1 << 20
	if n >= mib && n%mib == 0 {
		return strconv.FormatInt(n/mib, 10) + " MB"
	}
	if n >= 1<<10 {
		return strconv.FormatInt(n>>10, 10) + " KB"
	}
	return strconv.FormatInt(n, 10) + " bytes"
}

// applyStepForm copies the submitted text and dropdown values of the
// current step into the wizard. Fields absent from the form keep their
// value; dropdown values outside the option list are rejected.
func applyStepForm(c echo.Context, w *wizard.Wizard) error {
	def, ok := w.Catalog().Step(w.Step())
	if !ok {
		return nil
	}
	params, err := c.FormParams()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrFieldType, err)
	}

	for _, spec := range def.Fields {
		if spec.Kind() != wizard.KindString {
			continue
		}
		raw, present := params[string(spec.Name)]
		if !present || len(raw) == 0 {
			continue
		}
		value := handlers.SanitizeText(raw[0])
		if value != "" && !spec.HasOption(value) {
			return fmt.Errorf("%w: %s=%q", domain.ErrUnknownOption, spec.Name, value)
		}
		if err := w.SetField(spec.Name, value); err != nil {
			return err
		}
	}
	return nil
}
