package onboarding

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/nfrund/safeonboard/internal/wizard"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

// panelTarget is the element every wizard fragment replaces.
const panelTarget = "#wizard"

// panelData is the view model of the wizard panel.
type panelData struct {
	Step           int
	Total          int
	Progress       int
	Steps          []wizard.StepDefinition
	Current        wizard.StepDefinition
	Data           wizard.FormData
	Errors         wizard.ValidationErrors
	PreviewPending bool
	Notice         string
}

func newPanelData(w *wizard.Wizard, notice string) panelData {
	s := w.State()
	catalog := w.Catalog()
	current, _ := catalog.Step(s.Step)
	return panelData{
		Step:           s.Step,
		Total:          catalog.Len(),
		Progress:       catalog.Progress(s.Step),
		Steps:          catalog.Steps(),
		Current:        current,
		Data:           s.Data,
		Errors:         s.Errors,
		PreviewPending: w.PreviewPending(),
		Notice:         notice,
	}
}

func (p panelData) last() bool { return p.Step >= p.Total }

// Page is the full onboarding page body.
func Page(p panelData) g.Node {
	return h.Div(
		h.Class("max-w-3xl mx-auto"),
		h.H1(h.Class("text-3xl font-bold mb-2"), g.Text("Complete Your Profile")),
		h.P(h.Class("text-gray-600 mb-8"),
			g.Text("Help us verify your credentials so you can start supporting survivors.")),
		Panel(p),
	)
}

// Panel renders the current step, its progress and its fields. htmx
// requests swap this element as a whole.
func Panel(p panelData) g.Node {
	return h.Div(
		h.ID("wizard"),
		h.Class("bg-white rounded-xl shadow p-8"),
		progressHeader(p),
		stepList(p),
		g.If(p.Notice != "",
			h.Div(h.Class("mb-6 rounded-lg bg-red-100 px-4 py-3 text-red-800"), h.Role("alert"), g.Text(p.Notice)),
		),
		h.H2(h.Class("text-xl font-semibold"), g.Text(p.Current.Label)),
		g.If(p.Current.Description != "",
			h.P(h.Class("text-gray-600 mb-6"), g.Text(p.Current.Description)),
		),
		g.Map(p.Current.Fields, func(spec wizard.FieldSpec) g.Node {
			if spec.Kind() != wizard.KindAttachment {
				return nil
			}
			return attachmentField(p, spec)
		}),
		h.Form(
			h.ID("step-form"),
			h.Method("post"),
			h.Action(PathNext),
			hx.Post(PathNext),
			hx.Target(panelTarget),
			hx.Swap("outerHTML"),
			h.Class("space-y-6"),
			g.Map(p.Current.Fields, func(spec wizard.FieldSpec) g.Node {
				switch spec.Kind() {
				case wizard.KindString:
					return stringField(p, spec)
				case wizard.KindSet:
					return setField(p, spec)
				default:
					return nil
				}
			}),
			navigation(p),
		),
	)
}

func progressHeader(p panelData) g.Node {
	return h.Div(
		h.Class("mb-6"),
		h.Div(
			h.Class("flex justify-between text-sm text-gray-600 mb-2"),
			h.Span(g.Textf("Step %d of %d: %s", p.Step, p.Total, p.Current.Label)),
			h.Span(g.Textf("%d%% complete", p.Progress)),
		),
		h.Div(
			h.Class("w-full bg-gray-200 rounded-full h-2"),
			h.Role("progressbar"),
			h.Aria("valuenow", strconv.Itoa(p.Progress)),
			h.Aria("valuemin", "0"),
			h.Aria("valuemax", "100"),
			h.Div(h.Class("bg-indigo-600 h-2 rounded-full"), h.Style(fmt.Sprintf("width: %d%%", p.Progress))),
		),
	)
}

func stepList(p panelData) g.Node {
	return h.Ol(
		h.Class("flex gap-4 text-sm mb-8"),
		g.Map(p.Steps, func(s wizard.StepDefinition) g.Node {
			class := "text-gray-400"
			switch {
			case s.Number == p.Step:
				class = "font-semibold text-indigo-700"
			case s.Number < p.Step:
				class = "text-green-700"
			}
			return h.Li(h.Class(class), g.Textf("%d. %s", s.Number, s.Label))
		}),
	)
}

func fieldError(p panelData, f wizard.Field) g.Node {
	msg, ok := p.Errors[f]
	if !ok {
		return nil
	}
	return h.P(h.Class("mt-1 text-sm text-red-600"), h.ID("error-"+string(f)), g.Text(msg))
}

func label(spec wizard.FieldSpec) g.Node {
	return h.Label(
		h.For(string(spec.Name)),
		h.Class("block text-sm font-medium mb-1"),
		g.Text(spec.Label),
		g.If(spec.Required(), h.Span(h.Class("text-red-600"), g.Text(" *"))),
	)
}

func inputClass(p panelData, f wizard.Field) string {
	if p.Errors.Has(f) {
		return "w-full rounded-lg border border-red-500 px-3 py-2"
	}
	return "w-full rounded-lg border border-gray-300 px-3 py-2"
}

func stringField(p panelData, spec wizard.FieldSpec) g.Node {
	name := string(spec.Name)
	current := p.Data.String(spec.Name)

	var control g.Node
	if len(spec.Options) > 0 {
		control = h.Select(
			h.ID(name), h.Name(name), h.Class(inputClass(p, spec.Name)),
			h.Option(h.Value(""), g.Text("Select "+spec.Label)),
			g.Map(spec.Options, func(opt string) g.Node {
				return h.Option(h.Value(opt), g.If(opt == current, h.Selected()), g.Text(opt))
			}),
		)
	} else {
		control = h.Input(
			h.Type("text"), h.ID(name), h.Name(name), h.Value(current),
			g.If(spec.Placeholder != "", h.Placeholder(spec.Placeholder)),
			h.Class(inputClass(p, spec.Name)),
		)
	}
	return h.Div(label(spec), control, fieldError(p, spec.Name))
}

func setField(p panelData, spec wizard.FieldSpec) g.Node {
	selected := p.Data.Set(spec.Name)
	return h.FieldSet(
		h.Legend(h.Class("block text-sm font-medium mb-2"), g.Text(spec.Label),
			g.If(spec.Required(), h.Span(h.Class("text-red-600"), g.Text(" *")))),
		h.Div(
			h.Class("flex flex-wrap gap-2"),
			g.Map(spec.Options, func(opt string) g.Node {
				on := selected.Contains(opt)
				class := "rounded-full border px-4 py-2 text-sm border-gray-300 bg-white"
				if on {
					class = "rounded-full border px-4 py-2 text-sm border-indigo-600 bg-indigo-600 text-white"
				}
				return h.Button(
					h.Type("button"),
					h.Class(class),
					hx.Post(PathToggle),
					hx.Vals(toggleVals(spec.Name, opt)),
					hx.Target(panelTarget),
					hx.Swap("outerHTML"),
					h.Aria("pressed", strconv.FormatBool(on)),
					g.Text(opt),
				)
			}),
		),
		g.If(selected.Len() > 0,
			h.P(h.Class("mt-2 text-sm text-gray-600"), g.Textf("%d selected", selected.Len()))),
		fieldError(p, spec.Name),
	)
}

func toggleVals(f wizard.Field, value string) string {
	b, _ := json.Marshal(map[string]string{"field": string(f), "value": value})
	return string(b)
}

func attachmentField(p panelData, spec wizard.FieldSpec) g.Node {
	name := string(spec.Name)
	att := p.Data.Attachment(spec.Name)
	action := PathAttachments + "/" + name

	return h.Div(
		h.ID("field-"+name),
		h.Class("mb-6"),
		label(spec),
		g.If(spec.Name == wizard.FieldProfilePicture, ProfilePreview(att, p.PreviewPending)),
		attachedFile(action, att),
		h.Form(
			h.Method("post"),
			h.Action(action),
			h.EncType("multipart/form-data"),
			hx.Post(action),
			hx.Encoding("multipart/form-data"),
			hx.Trigger("change"),
			hx.Target(panelTarget),
			hx.Swap("outerHTML"),
			h.Input(
				h.Type("file"), h.ID(name), h.Name(uploadFormField),
				g.If(spec.Accept != "", h.Accept(spec.Accept)),
				h.Class("block w-full text-sm"),
			),
			h.NoScript(h.Button(h.Type("submit"), h.Class("mt-2 underline"), g.Text("Upload"))),
		),
		g.If(spec.Accept != "", h.P(h.Class("mt-1 text-xs text-gray-500"), g.Text("Accepted formats: "+spec.Accept))),
		fieldError(p, spec.Name),
	)
}

func attachedFile(action string, att *wizard.FileAttachment) g.Node {
	if att == nil {
		return nil
	}
	return h.Form(
		h.Class("flex items-center gap-3 my-2 text-sm"),
		h.Method("post"),
		h.Action(action),
		hx.Post(action),
		hx.Target(panelTarget),
		hx.Swap("outerHTML"),
		h.Input(h.Type("hidden"), h.Name("clear"), h.Value("true")),
		h.Span(h.Class("font-medium"), g.Text(att.Name)),
		h.Span(h.Class("text-gray-500"), g.Text(formatSize(att.Size))),
		h.Button(h.Type("submit"), h.Class("text-red-600 underline"), g.Text("Remove")),
	)
}

// ProfilePreview renders the profile picture slot. A pending decode makes
// the slot poll PathPreview until the image is ready.
func ProfilePreview(att *wizard.FileAttachment, pending bool) g.Node {
	frame := "w-24 h-24 rounded-full overflow-hidden bg-gray-100 flex items-center justify-center text-xs text-gray-500 mb-3"
	switch {
	case att == nil:
		return h.Div(h.ID("profile-preview"), h.Class(frame), g.Text("No photo"))
	case att.Preview != "":
		return h.Div(h.ID("profile-preview"), h.Class(frame),
			h.Img(h.Src(att.Preview), h.Alt("Profile picture preview"), h.Class("w-full h-full object-cover")))
	case pending:
		return h.Div(h.ID("profile-preview"), h.Class(frame),
			hx.Get(PathPreview),
			hx.Trigger("load delay:500ms"),
			hx.Swap("outerHTML"),
			g.Text("Loading preview..."))
	default:
		return h.Div(h.ID("profile-preview"), h.Class(frame), g.Text("Preview unavailable"))
	}
}

func navigation(p panelData) g.Node {
	next := "Next"
	if p.last() {
		next = "Complete Setup"
	}
	return h.Div(
		h.Class("flex justify-between pt-4 border-t"),
		h.Button(
			h.Type("submit"),
			g.Attr("formaction", PathBack),
			hx.Post(PathBack),
			g.If(p.Step <= 1, h.Disabled()),
			h.Class("rounded-lg border border-gray-300 px-6 py-2 disabled:opacity-50"),
			g.Text("Back"),
		),
		h.Button(
			h.Type("submit"),
			h.Class("rounded-lg bg-indigo-600 px-6 py-2 text-white"),
			g.Text(next),
		),
	)
}
