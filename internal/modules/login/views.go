package login

import (
	loginform "github.com/nfrund/safeonboard/internal/login"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

type formData struct {
	Identifier string
	Errors     loginform.Errors
}

// Form renders the login card. The password is never echoed back.
func Form(d formData) g.Node {
	return h.Div(
		h.Class("max-w-md mx-auto bg-white rounded-xl shadow p-8"),
		h.H1(h.Class("text-2xl font-bold"), g.Text("Welcome Back")),
		h.P(h.Class("text-gray-500 text-sm mb-6"),
			g.Text("Please fill in the information below to log back into your account")),
		h.Form(
			h.Method("post"),
			h.Action(PathLogin),
			h.Class("space-y-5"),
			g.Attr("novalidate"),
			input(d, loginform.FieldIdentifier, "Email / Phone Number", "text", "Enter your email or phone number", d.Identifier),
			input(d, loginform.FieldPassword, "Password", "password", "Enter your password", ""),
			h.Button(
				h.Type("submit"),
				h.Class("w-full rounded-lg bg-indigo-600 py-3 font-semibold text-white"),
				g.Text("Log in"),
			),
		),
		h.BlockQuote(
			h.Class("mt-8 text-center text-sm italic text-gray-600"),
			g.Text("Your courage inspires us. Every step forward is a step toward healing and hope."),
		),
	)
}

func input(d formData, name, label, kind, placeholder, value string) g.Node {
	msg, invalid := d.Errors[name]
	class := "w-full rounded-lg border border-gray-300 px-4 py-2"
	if invalid {
		class = "w-full rounded-lg border border-red-500 px-4 py-2"
	}
	return h.Div(
		h.Label(h.For(name), h.Class("block text-sm mb-1"), g.Text(label)),
		h.Input(
			h.Type(kind), h.ID(name), h.Name(name),
			h.Placeholder(placeholder),
			g.If(value != "", h.Value(value)),
			h.Class(class),
		),
		g.If(invalid, h.P(h.Class("mt-1 text-sm text-red-600"), h.ID("error-"+name), g.Text(msg))),
	)
}
