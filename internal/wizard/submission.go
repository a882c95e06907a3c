package wizard

import (
	"context"
	"time"
)

// Submission is the completed form handed to the host application.
type Submission struct {
	WizardID    string
	Data        FormData
	CompletedAt time.Time
}

// CompletionFunc receives a completed submission. It returns nothing: what
// happens next (confirmation page, forwarding to a backend) is up to the host.
type CompletionFunc func(ctx context.Context, sub Submission)

// Coordinator forwards a validated final step to the host. It performs no
// validation of its own.
type Coordinator struct {
	complete CompletionFunc
	now      func() time.Time
}

// NewCoordinator wraps fn. A nil fn makes Complete a no-op.
func NewCoordinator(fn CompletionFunc) *Coordinator {
	return &Coordinator{complete: fn, now: time.Now}
}

// Complete forwards a snapshot of data to the host callback.
func (c *Coordinator) Complete(ctx context.Context, wizardID string, data FormData) {
	if c == nil || c.complete == nil {
		return
	}
	c.complete(ctx, Submission{
		WizardID:    wizardID,
		Data:        data.Clone(),
		CompletedAt: c.now(),
	})
}
