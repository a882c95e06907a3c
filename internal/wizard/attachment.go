package wizard

import (
	"context"
	"errors"
)

// Attach stores att in an attachment field, or clears it when att is nil.
// The slot is updated before Attach returns. For the profile picture a
// preview decode is started in the background; any decode still running
// for an earlier selection is cancelled and its result discarded.
func (w *Wizard) Attach(f Field, att *FileAttachment) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if att != nil {
		att = att.clone()
		att.Preview = ""
	}
	next, err := AttachField(w.state, f, att)
	if err != nil {
		return err
	}
	w.state = next

	if f != FieldProfilePicture {
		return nil
	}
	w.supersedePreviewLocked()
	if att == nil || w.decoder == nil {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	w.previewCancel = cancel
	w.previewDone = done
	go w.decodePreview(ctx, w.previewGen, *att, done)
	return nil
}

// PreviewPending reports whether a profile picture decode is in flight.
func (w *Wizard) PreviewPending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.previewDone == nil {
		return false
	}
	select {
	case <-w.previewDone:
		return false
	default:
		return true
	}
}

// AwaitPreview blocks until the current decode, if any, has finished or
// ctx is done.
func (w *Wizard) AwaitPreview(ctx context.Context) error {
	w.mu.Lock()
	done := w.previewDone
	w.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// supersedePreviewLocked invalidates the running decode. Callers hold w.mu.
func (w *Wizard) supersedePreviewLocked() {
	w.previewGen++
	if w.previewCancel != nil {
		w.previewCancel()
		w.previewCancel = nil
	}
	w.previewDone = nil
}

func (w *Wizard) decodePreview(ctx context.Context, gen uint64, att FileAttachment, done chan struct{}) {
	defer close(done)

	preview, err := w.decoder.Decode(ctx, att)

	w.mu.Lock()
	defer w.mu.Unlock()

	if gen != w.previewGen {
		w.logger.Debug("discarding stale preview", "ref", att.Ref)
		return
	}
	if w.previewCancel != nil {
		w.previewCancel()
		w.previewCancel = nil
	}
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			w.logger.Warn("preview decode failed", "ref", att.Ref, "error", err)
		}
		return
	}

	current := w.state.Data.ProfilePicture
	if current == nil || current.Ref != att.Ref {
		return
	}
	updated := *current
	updated.Preview = preview
	w.state.Data.ProfilePicture = &updated
}
