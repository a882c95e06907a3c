package wizard

import (
	"context"
	"log/slog"
	"sync"
)

// Wizard is the step controller for one onboarding session. It owns the
// state, serialises every mutation and runs the profile picture decode in
// the background.
type Wizard struct {
	id          string
	machine     *Machine
	coordinator *Coordinator
	decoder     PreviewDecoder
	logger      *slog.Logger

	mu    sync.Mutex
	state State

	previewGen    uint64
	previewCancel context.CancelFunc
	previewDone   chan struct{}
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithDecoder sets the profile picture preview decoder. Without one no
// previews are produced.
func WithDecoder(d PreviewDecoder) Option {
	return func(w *Wizard) { w.decoder = d }
}

// WithCoordinator sets the submission coordinator.
func WithCoordinator(c *Coordinator) Option {
	return func(w *Wizard) { w.coordinator = c }
}

// WithLogger sets the logger used for background work.
func WithLogger(l *slog.Logger) Option {
	return func(w *Wizard) { w.logger = l }
}

// New creates a wizard in its initial state.
func New(id string, machine *Machine, opts ...Option) *Wizard {
	w := &Wizard{
		id:      id,
		machine: machine,
		state:   NewState(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.With("wizard_id", id)
	return w
}

// ID returns the wizard identifier.
func (w *Wizard) ID() string { return w.id }

// Catalog returns the step catalog the wizard runs.
func (w *Wizard) Catalog() *Catalog { return w.machine.Catalog() }

// State returns a snapshot of the current state.
func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	s := w.state
	s.Data = s.Data.Clone()
	s.Errors = s.Errors.clone()
	return s
}

// Snapshot returns a copy of the current form data.
func (w *Wizard) Snapshot() FormData {
	return w.State().Data
}

// Step returns the current step number.
func (w *Wizard) Step() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Step
}

// Progress returns the completion percentage of the current step.
func (w *Wizard) Progress() int {
	return w.machine.Progress(w.Step())
}

// SetField replaces a single field value.
func (w *Wizard) SetField(f Field, value any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	next, err := SetField(w.state, f, value)
	if err != nil {
		return err
	}
	w.state = next
	return nil
}

// Toggle flips value in a multi-select field.
func (w *Wizard) Toggle(f Field, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	next, err := ToggleField(w.state, f, value)
	if err != nil {
		return err
	}
	w.state = next
	return nil
}

// Next validates the current step and moves forward on success. On the
// final step a successful validation hands the data to the coordinator,
// once per call, after the lock is released.
func (w *Wizard) Next(ctx context.Context) Outcome {
	w.mu.Lock()
	next, outcome := w.machine.Next(w.state)
	w.state = next
	data := next.Data.Clone()
	w.mu.Unlock()

	switch outcome {
	case Blocked:
		w.logger.Debug("step blocked by validation", "step", next.Step, "errors", len(next.Errors))
	case Advanced:
		w.logger.Debug("advanced", "step", next.Step)
	case Completed:
		w.logger.Info("onboarding completed")
		w.coordinator.Complete(ctx, w.id, data)
	}
	return outcome
}

// Back moves to the previous step and clears errors.
func (w *Wizard) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = w.machine.Back(w.state)
}

// Close cancels any pending background work.
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.supersedePreviewLocked()
}
