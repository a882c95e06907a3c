package confirmation

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

var nextSteps = []string{
	"Our team will review your profile and verification documents",
	"You will receive an email within 30 minutes",
	"Once approved, you can start connecting with GBV survivors",
	"You'll gain access to the full SAFE AI platform dashboard",
}

// Page renders the completion message.
func Page() g.Node {
	return h.Div(
		h.Class("max-w-2xl mx-auto bg-white rounded-xl shadow p-10 text-center"),
		h.H1(h.Class("text-3xl font-bold text-green-700 mb-4"), g.Text("Profile Setup Complete!")),
		h.P(h.Class("text-gray-700 mb-8"),
			g.Text("Thank you for completing your profile. Your information has been submitted for verification. "+
				"You will receive a notification once your account is activated.")),
		h.Div(
			h.Class("text-left bg-indigo-50 rounded-lg p-6 mb-8"),
			h.H2(h.Class("font-semibold mb-3"), g.Text("What's Next?")),
			h.Ul(h.Class("list-disc pl-6 space-y-2"),
				g.Map(nextSteps, func(s string) g.Node { return h.Li(g.Text(s)) }),
			),
		),
		h.BlockQuote(
			h.Class("italic text-gray-600"),
			h.P(g.Text("Your courage inspires us. Every step forward is a step toward healing and hope.")),
			h.P(h.Class("mt-2 not-italic text-sm"), g.Text("~ Safe AI Team")),
		),
		h.Form(
			h.Method("post"), h.Action("/logout"), h.Class("mt-8"),
			h.Button(h.Type("submit"), h.Class("underline text-gray-500"), g.Text("Log out")),
		),
	)
}
