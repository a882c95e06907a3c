// Package display formats CLI output as tables or JSON.
package display

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/nfrund/safeonboard/cmd/onboard-cli/internal/profile"
	"github.com/nfrund/safeonboard/internal/wizard"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCase = cases.Title(language.English)

// FieldDisplay represents a field for display purposes
type FieldDisplay struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Kind     string   `json:"kind"`
	Required bool     `json:"required"`
	Message  string   `json:"message,omitempty"`
	Options  []string `json:"options,omitempty"`
}

// StepDisplay represents a step for display purposes
type StepDisplay struct {
	Number int            `json:"number"`
	Label  string         `json:"label"`
	Fields []FieldDisplay `json:"fields"`
}

func stepDisplays(c *wizard.Catalog) []StepDisplay {
	steps := c.Steps()
	out := make([]StepDisplay, len(steps))
	for i, s := range steps {
		out[i] = StepDisplay{Number: s.Number, Label: s.Label}
		for _, f := range s.Fields {
			out[i].Fields = append(out[i].Fields, FieldDisplay{
				Name:     string(f.Name),
				Label:    f.Label,
				Kind:     titleCase.String(f.Kind().String()),
				Required: f.Required(),
				Message:  f.Message,
				Options:  f.Options,
			})
		}
	}
	return out
}

// StepsTable writes one row per field, grouped by step.
func StepsTable(w io.Writer, c *wizard.Catalog) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "STEP\tFIELD\tKIND\tREQUIRED\tOPTIONS")
	fmt.Fprintln(tw, "----\t-----\t----\t--------\t-------")
	for _, s := range stepDisplays(c) {
		for _, f := range s.Fields {
			required := "no"
			if f.Required {
				required = "yes"
			}
			options := "-"
			if len(f.Options) > 0 {
				options = truncateString(strings.Join(f.Options, ", "), 40)
			}
			fmt.Fprintf(tw, "%d. %s\t%s\t%s\t%s\t%s\n", s.Number, s.Label, f.Name, f.Kind, required, options)
		}
	}
}

// StepsJSON writes the catalog as JSON.
func StepsJSON(w io.Writer, c *wizard.Catalog) error {
	steps := stepDisplays(c)
	output := struct {
		Steps []StepDisplay `json:"steps"`
		Count int           `json:"count"`
	}{
		Steps: steps,
		Count: len(steps),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// Results writes one line per step and one indented line per violation.
func Results(w io.Writer, results []profile.Result) {
	for _, r := range results {
		if len(r.Errors) == 0 {
			fmt.Fprintf(w, "✅ Step %d: %s\n", r.Step, r.Label)
			continue
		}
		fmt.Fprintf(w, "❌ Step %d: %s\n", r.Step, r.Label)

		fields := make([]string, 0, len(r.Errors))
		for f := range r.Errors {
			fields = append(fields, string(f))
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Fprintf(w, "   %s: %s\n", f, r.Errors[wizard.Field(f)])
		}
	}
}

// Event is a published topic.
type Event struct {
	Name        string
	Description string
}

// Events writes the event topics as a table.
func Events(w io.Writer, events []Event) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "NAME\tDESCRIPTION")
	fmt.Fprintln(tw, "----\t-----------")
	for _, e := range events {
		fmt.Fprintf(tw, "%s\t%s\n", e.Name, e.Description)
	}
}

// truncateString truncates a string to maxLen characters, adding "..." if truncated
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return "..."
	}
	return s[:maxLen-3] + "..."
}
