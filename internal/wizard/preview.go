package wizard

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/nfrund/safeonboard/internal/domain"
)

// PreviewDecoder turns a stored attachment into a displayable data URL.
type PreviewDecoder interface {
	Decode(ctx context.Context, att FileAttachment) (string, error)
}

// Opener gives read access to stored attachment bytes.
type Opener interface {
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

// DefaultPreviewLimit caps how many bytes are inlined into a preview.
const DefaultPreviewLimit = 5 << 20

// DataURLDecoder reads an image from an Opener and encodes it as a base64
// data URL. Non-image content is rejected.
type DataURLDecoder struct {
	opener Opener
	limit  int64
}

// NewDataURLDecoder creates a decoder reading at most limit bytes per file.
// A non-positive limit selects DefaultPreviewLimit.
func NewDataURLDecoder(opener Opener, limit int64) *DataURLDecoder {
	if limit <= 0 {
		limit = DefaultPreviewLimit
	}
	return &DataURLDecoder{opener: opener, limit: limit}
}

// Decode implements PreviewDecoder.
func (d *DataURLDecoder) Decode(ctx context.Context, att FileAttachment) (string, error) {
	rc, err := d.opener.Open(ctx, att.Ref)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", att.Ref, err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(io.LimitReader(rc, d.limit+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", att.Ref, err)
	}
	if int64(len(raw)) > d.limit {
		return "", fmt.Errorf("%w: preview source exceeds %d bytes", domain.ErrUploadTooLarge, d.limit)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	mtype := mimetype.Detect(raw)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", fmt.Errorf("%w: %s", domain.ErrNotImage, mtype.String())
	}

	var b strings.Builder
	b.Grow(len("data:;base64,") + len(mtype.String()) + base64.StdEncoding.EncodedLen(len(raw)))
	b.WriteString("data:")
	b.WriteString(mtype.String())
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(raw))
	return b.String(), nil
}
