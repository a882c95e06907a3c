package wizard

import (
	_ "embed"
	"fmt"
	"math"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed steps.yaml
var defaultStepsYAML []byte

// Rule names the check the validator applies to a required field.
type Rule string

const (
	RuleText       Rule = "text"
	RuleSelection  Rule = "selection"
	RuleSet        Rule = "set"
	RuleAttachment Rule = "attachment"
)

// ruleKinds pins each rule to the field kind it can check.
var ruleKinds = map[Rule]Kind{
	RuleText:       KindString,
	RuleSelection:  KindString,
	RuleSet:        KindSet,
	RuleAttachment: KindAttachment,
}

// FieldSpec describes how a step presents and checks one field.
// An empty Rule marks the field as optional.
type FieldSpec struct {
	Name        Field    `yaml:"name"`
	Label       string   `yaml:"label"`
	Rule        Rule     `yaml:"rule"`
	Message     string   `yaml:"message"`
	Placeholder string   `yaml:"placeholder"`
	Options     []string `yaml:"options"`
	Accept      string   `yaml:"accept"`
}

// Required reports whether the validator checks this field.
func (f FieldSpec) Required() bool { return f.Rule != "" }

// Kind returns the value kind of the underlying form field.
func (f FieldSpec) Kind() Kind {
	k, _ := KindOf(f.Name)
	return k
}

// HasOption reports whether v is one of the declared options. Fields
// without an option list accept any value.
func (f FieldSpec) HasOption(v string) bool {
	if len(f.Options) == 0 {
		return true
	}
	return slices.Contains(f.Options, v)
}

// StepDefinition is one page of the wizard.
type StepDefinition struct {
	Number      int         `yaml:"number"`
	Label       string      `yaml:"label"`
	Description string      `yaml:"description"`
	Fields      []FieldSpec `yaml:"fields"`
}

// Owns reports whether the step owns field f.
func (s StepDefinition) Owns(f Field) bool {
	for _, spec := range s.Fields {
		if spec.Name == f {
			return true
		}
	}
	return false
}

// Required returns the subset of fields the validator checks.
func (s StepDefinition) Required() []FieldSpec {
	var out []FieldSpec
	for _, spec := range s.Fields {
		if spec.Required() {
			out = append(out, spec)
		}
	}
	return out
}

// Catalog is the ordered, immutable list of wizard steps.
type Catalog struct {
	steps []StepDefinition
	owner map[Field]int
	specs map[Field]FieldSpec
}

type catalogDocument struct {
	Steps []StepDefinition `yaml:"steps"`
}

// LoadCatalog parses a YAML step catalog. Steps must be numbered 1..N in
// order, every field must exist and belong to exactly one step, and each
// rule must match the kind of the field it checks.
func LoadCatalog(data []byte) (*Catalog, error) {
	var doc catalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: parse: %w", err)
	}
	if len(doc.Steps) == 0 {
		return nil, fmt.Errorf("catalog: no steps defined")
	}

	c := &Catalog{
		steps: doc.Steps,
		owner: make(map[Field]int),
		specs: make(map[Field]FieldSpec),
	}
	for i, step := range doc.Steps {
		if step.Number != i+1 {
			return nil, fmt.Errorf("catalog: step at position %d is numbered %d", i+1, step.Number)
		}
		for _, spec := range step.Fields {
			kind, err := KindOf(spec.Name)
			if err != nil {
				return nil, fmt.Errorf("catalog: step %d: %w", step.Number, err)
			}
			if prev, dup := c.owner[spec.Name]; dup {
				return nil, fmt.Errorf("catalog: field %q owned by steps %d and %d", spec.Name, prev, step.Number)
			}
			if spec.Required() {
				want, known := ruleKinds[spec.Rule]
				if !known {
					return nil, fmt.Errorf("catalog: field %q: unknown rule %q", spec.Name, spec.Rule)
				}
				if want != kind {
					return nil, fmt.Errorf("catalog: field %q: rule %q needs a %s field, got %s", spec.Name, spec.Rule, want, kind)
				}
				if spec.Message == "" {
					return nil, fmt.Errorf("catalog: field %q: missing message", spec.Name)
				}
			}
			c.owner[spec.Name] = step.Number
			c.specs[spec.Name] = spec
		}
	}
	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// DefaultCatalog returns the built-in five step catalog.
func DefaultCatalog() *Catalog {
	defaultOnce.Do(func() {
		c, err := LoadCatalog(defaultStepsYAML)
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Len returns N, the number of steps.
func (c *Catalog) Len() int { return len(c.steps) }

// Progress returns the completion percentage for step, rounded.
func (c *Catalog) Progress(step int) int {
	return int(math.Round(float64(step) / float64(len(c.steps)) * 100))
}

// Steps returns the step definitions in order.
func (c *Catalog) Steps() []StepDefinition {
	return slices.Clone(c.steps)
}

// Step returns the definition for step number n (1-based).
func (c *Catalog) Step(n int) (StepDefinition, bool) {
	if n < 1 || n > len(c.steps) {
		return StepDefinition{}, false
	}
	return c.steps[n-1], true
}

// Owner returns the number of the step that owns f.
func (c *Catalog) Owner(f Field) (int, bool) {
	n, ok := c.owner[f]
	return n, ok
}

// Spec returns the presentation and rule details of f.
func (c *Catalog) Spec(f Field) (FieldSpec, bool) {
	spec, ok := c.specs[f]
	return spec, ok
}
