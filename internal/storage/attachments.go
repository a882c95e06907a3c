package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/nfrund/safeonboard/internal/domain"
)

// DefaultMaxUploadBytes is used when no upload limit is configured.
const DefaultMaxUploadBytes = 10 << 20

// Attachments stores wizard uploads under a per-wizard prefix.
type Attachments struct {
	store   Store
	maxSize int64
}

// NewAttachments creates an attachment service. A non-positive maxSize
// selects DefaultMaxUploadBytes.
func NewAttachments(store Store, maxSize int64) *Attachments {
	if maxSize <= 0 {
		maxSize = DefaultMaxUploadBytes
	}
	return &Attachments{store: store, maxSize: maxSize}
}

// MaxSize returns the upload limit in bytes.
func (a *Attachments) MaxSize() int64 { return a.maxSize }

// Put saves content for the given wizard and field and returns the stored
// file's metadata. Content larger than the limit is removed again and
// reported as domain.ErrUploadTooLarge.
func (a *Attachments) Put(ctx context.Context, wizardID, field, originalFilename, mimeType string, content io.Reader) (*domain.StoredFile, error) {
	prefix := a.prefix(wizardID)
	if wizardID == "" || path.Base(prefix) != wizardID || path.Base(field) != field {
		return nil, fmt.Errorf("invalid upload target %q/%q", wizardID, field)
	}

	// Sanitize the filename to prevent path traversal attacks.
	name := filepath.Base(originalFilename)
	storagePath := path.Join(prefix, field, uuid.NewString()+filepath.Ext(name))

	meta := &domain.StoredFile{
		Filename:    name,
		MIMEType:    mimeType,
		StoragePath: storagePath,
	}
	if err := meta.Validate(); err != nil {
		return nil, fmt.Errorf("invalid upload: %w", err)
	}

	written, err := a.store.Save(ctx, storagePath, io.LimitReader(content, a.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to save file content: %w", err)
	}
	if written > a.maxSize {
		_ = a.store.Delete(ctx, storagePath)
		return nil, fmt.Errorf("%w: limit is %d bytes", domain.ErrUploadTooLarge, a.maxSize)
	}
	meta.Size = written
	return meta, nil
}

// Open returns a reader for a stored attachment.
func (a *Attachments) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	return a.store.Open(ctx, ref)
}

// Remove deletes a single stored attachment.
func (a *Attachments) Remove(ctx context.Context, ref string) error {
	return a.store.Delete(ctx, ref)
}

// Purge deletes every upload belonging to a wizard when the backend
// supports tree removal.
func (a *Attachments) Purge(ctx context.Context, wizardID string) error {
	if td, ok := a.store.(interface {
		DeleteAll(ctx context.Context, path string) error
	}); ok {
		return td.DeleteAll(ctx, a.prefix(wizardID))
	}
	return nil
}

func (a *Attachments) prefix(wizardID string) string {
	return path.Join("wizards", wizardID)
}
