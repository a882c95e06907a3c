package wizard

import (
	"fmt"

	"github.com/nfrund/safeonboard/internal/domain"
)

// State is the complete wizard state: the current step (1..N), the form
// data and the errors from the latest validation attempt.
type State struct {
	Step   int
	Data   FormData
	Errors ValidationErrors
}

// NewState returns the initial state: step 1, empty data, no errors.
func NewState() State {
	return State{Step: 1}
}

// Outcome reports what a Next transition did.
type Outcome int

const (
	// Blocked means validation failed and the step did not change.
	Blocked Outcome = iota
	// Advanced means the wizard moved to the following step.
	Advanced
	// Completed means the final step validated; the caller submits.
	Completed
)

func (o Outcome) String() string {
	switch o {
	case Blocked:
		return "blocked"
	case Advanced:
		return "advanced"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Machine holds the pure step transitions for one catalog.
type Machine struct {
	catalog   *Catalog
	validator *Validator
}

// NewMachine creates a Machine over the given catalog.
func NewMachine(c *Catalog) *Machine {
	return &Machine{catalog: c, validator: NewValidator(c)}
}

// Catalog returns the step catalog the machine runs.
func (m *Machine) Catalog() *Catalog { return m.catalog }

// Validate checks step against data.
func (m *Machine) Validate(step int, data FormData) ValidationErrors {
	return m.validator.Validate(step, data)
}

// Next validates the current step. On failure the step is kept and the
// errors recorded. On success errors are cleared and the step advances,
// except on the last step where the outcome is Completed instead.
func (m *Machine) Next(s State) (State, Outcome) {
	errs := m.validator.Validate(s.Step, s.Data)
	if len(errs) > 0 {
		s.Errors = errs
		return s, Blocked
	}
	s.Errors = nil
	if s.Step < m.catalog.Len() {
		s.Step++
		return s, Advanced
	}
	return s, Completed
}

// Back moves one step backwards when possible and always clears errors.
func (m *Machine) Back(s State) State {
	if s.Step > 1 {
		s.Step--
	}
	s.Errors = nil
	return s
}

// Progress returns the completion percentage for step, rounded.
func (m *Machine) Progress(step int) int {
	return m.catalog.Progress(step)
}

// SetField returns s with one field replaced.
func SetField(s State, f Field, value any) (State, error) {
	data, err := s.Data.With(f, value)
	if err != nil {
		return s, err
	}
	s.Data = data
	return s, nil
}

// ToggleField returns s with value toggled in a multi-select field.
func ToggleField(s State, f Field, value string) (State, error) {
	data, err := s.Data.Toggle(f, value)
	if err != nil {
		return s, err
	}
	s.Data = data
	return s, nil
}

// AttachField returns s with an attachment slot replaced.
func AttachField(s State, f Field, att *FileAttachment) (State, error) {
	kind, err := KindOf(f)
	if err != nil {
		return s, err
	}
	if kind != KindAttachment {
		return s, fmt.Errorf("%w: %s", domain.ErrNotAttachment, f)
	}
	return SetField(s, f, att)
}
