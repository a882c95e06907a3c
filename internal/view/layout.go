package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

const (
	htmxScriptURL     = "https://unpkg.com/htmx.org@2.0.4"
	tailwindScriptURL = "https://cdn.tailwindcss.com"
)

// Base wraps page content in the full HTML document with the site header
// and any flash messages.
func Base(title string, flashes FlashData, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return document(title, flashes, AdaptTemplToGomponent(ctx, content)).Render(w)
	})
}

func document(title string, flashes FlashData, content g.Node) g.Node {
	return h.Doctype(
		h.HTML(
			h.Lang("en"),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				h.TitleEl(g.Text(title+" | SafeOnboard")),
				h.Script(h.Src(htmxScriptURL)),
				h.Script(h.Src(tailwindScriptURL)),
			),
			h.Body(
				h.Class("min-h-screen bg-gray-50 text-gray-900"),
				h.Header(
					h.Class("bg-indigo-700 text-white"),
					h.Div(
						h.Class("container mx-auto px-6 py-4 flex items-center justify-between"),
						h.A(h.Href("/"), h.Class("text-xl font-bold"), g.Text("SafeOnboard")),
						h.Span(h.Class("text-sm text-indigo-100"), g.Text("Service provider registration")),
					),
				),
				h.Main(
					h.Class("container mx-auto px-6 py-8"),
					Flashes(flashes),
					content,
				),
			),
		),
	)
}

// Flashes renders queued success and error messages.
func Flashes(f FlashData) g.Node {
	if f.Empty() {
		return nil
	}
	return h.Div(
		h.ID("flashes"),
		h.Class("mb-6 space-y-2"),
		g.Map(f.Success, func(msg string) g.Node {
			return h.Div(h.Class("rounded-lg bg-green-100 px-4 py-3 text-green-800"), h.Role("status"), g.Text(msg))
		}),
		g.Map(f.Error, func(msg string) g.Node {
			return h.Div(h.Class("rounded-lg bg-red-100 px-4 py-3 text-red-800"), h.Role("alert"), g.Text(msg))
		}),
	)
}
