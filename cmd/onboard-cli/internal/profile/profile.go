// Package profile reads provider profiles from YAML and checks them
// against the wizard steps.
package profile

import (
	"errors"
	"fmt"
	"io"

	"github.com/nfrund/safeonboard/internal/wizard"
	"gopkg.in/yaml.v3"
)

// Load decodes a YAML mapping of field names to values into FormData.
// Attachment fields take a file name, which becomes both Name and Ref.
func Load(r io.Reader) (wizard.FormData, error) {
	var raw map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return wizard.FormData{}, fmt.Errorf("parse: %w", err)
	}

	var data wizard.FormData
	for name, value := range raw {
		f := wizard.Field(name)
		kind, err := wizard.KindOf(f)
		if err != nil {
			return wizard.FormData{}, err
		}
		v, err := convert(f, kind, value)
		if err != nil {
			return wizard.FormData{}, err
		}
		if data, err = data.With(f, v); err != nil {
			return wizard.FormData{}, err
		}
	}
	return data, nil
}

func convert(f wizard.Field, kind wizard.Kind, value any) (any, error) {
	switch kind {
	case wizard.KindSet:
		items, ok := value.([]any)
		if !ok {
			return nil, fmt.Errorf("%s: expected a list, got %T", f, value)
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			out = append(out, fmt.Sprint(item))
		}
		return out, nil
	case wizard.KindAttachment:
		if value == nil {
			return nil, nil
		}
		name := fmt.Sprint(value)
		return &wizard.FileAttachment{Ref: name, Name: name}, nil
	default:
		if value == nil {
			return "", nil
		}
		// YAML turns 7 or 24 into numbers; the form only knows strings.
		return fmt.Sprint(value), nil
	}
}

// Result is the outcome of validating one step.
type Result struct {
	Step   int
	Label  string
	Errors wizard.ValidationErrors
}

// Check validates every step of the machine's catalog against data.
func Check(m *wizard.Machine, data wizard.FormData) []Result {
	steps := m.Catalog().Steps()
	results := make([]Result, 0, len(steps))
	for _, step := range steps {
		results = append(results, Result{
			Step:   step.Number,
			Label:  step.Label,
			Errors: m.Validate(step.Number, data),
		})
	}
	return results
}

// Passed reports whether every step validated.
func Passed(results []Result) bool {
	for _, r := range results {
		if len(r.Errors) > 0 {
			return false
		}
	}
	return true
}
