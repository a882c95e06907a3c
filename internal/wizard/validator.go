package wizard

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ValidationErrors maps a field to a human readable message. A field with
// no entry is valid.
type ValidationErrors map[Field]string

// Has reports whether f failed validation.
func (e ValidationErrors) Has(f Field) bool {
	_, ok := e[f]
	return ok
}

func (e ValidationErrors) clone() ValidationErrors {
	if len(e) == 0 {
		return nil
	}
	out := make(ValidationErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// ruleTags translates catalog rules into validator tags.
var ruleTags = map[Rule]string{
	RuleText:       "required",
	RuleSelection:  "required",
	RuleSet:        "required,min=1",
	RuleAttachment: "required",
}

// Validator checks the required fields of a step against form data.
type Validator struct {
	catalog  *Catalog
	validate *validator.Validate
}

// NewValidator creates a Validator for the given catalog.
func NewValidator(c *Catalog) *Validator {
	return &Validator{catalog: c, validate: validator.New()}
}

// Validate returns the violations for step. It reads only the fields the
// step owns, never modifies data, and returns a fresh map on every call.
// Unknown step numbers have no fields and therefore no violations.
func (v *Validator) Validate(step int, data FormData) ValidationErrors {
	errs := ValidationErrors{}
	def, ok := v.catalog.Step(step)
	if !ok {
		return errs
	}
	for _, spec := range def.Required() {
		if err := v.validate.Var(ruleValue(spec, data), ruleTags[spec.Rule]); err != nil {
			errs[spec.Name] = spec.Message
		}
	}
	return errs
}

func ruleValue(spec FieldSpec, data FormData) any {
	switch spec.Rule {
	case RuleText:
		return strings.TrimSpace(data.String(spec.Name))
	case RuleSet:
		return data.Set(spec.Name).Values()
	case RuleAttachment:
		return data.Attachment(spec.Name)
	default:
		return data.String(spec.Name)
	}
}

// Validate checks step against the default catalog.
func Validate(step int, data FormData) ValidationErrors {
	return defaultValidator().Validate(step, data)
}

var defaultValidator = sync.OnceValue(func() *Validator {
	return NewValidator(DefaultCatalog())
})
