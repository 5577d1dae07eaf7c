package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"petplus/internal/platform/metrics"
	portmedia "petplus/internal/ports/media"

	"github.com/google/uuid"
)

// ErrUploadFailed envuelve cualquier falla del host externo; aborta la operación dueña.
var ErrUploadFailed = errors.New("image upload failed")

// DefaultMaxBytes es el tope por archivo si no se configura otro.
const DefaultMaxBytes int64 = 5 << 20

// Relay valida y reenvía adjuntos al media host.
type Relay struct {
	uploader portmedia.Uploader
	maxBytes int64
	now      func() time.Time
}

func NewRelay(uploader portmedia.Uploader, maxBytes int64) *Relay {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Relay{
		uploader: uploader,
		maxBytes: maxBytes,
		now:      time.Now,
	}
}

func (r *Relay) MaxBytes() int64 {
	if r == nil || r.maxBytes <= 0 {
		return DefaultMaxBytes
	}
	return r.maxBytes
}

// Validate expone la validación para que los servicios la corran antes de sus propios chequeos.
func (r *Relay) Validate(f *File) error {
	if f != nil && int64(f.Size()) > r.MaxBytes() {
		return ErrTooLarge
	}
	return Validate(f)
}

// Store valida f y lo sube; devuelve el locator que hay que guardar como photo_url.
func (r *Relay) Store(ctx context.Context, kind portmedia.Kind, f *File) (string, error) {
	if err := r.Validate(f); err != nil {
		return "", err
	}
	if r == nil || r.uploader == nil {
		return "", fmt.Errorf("%w: no uploader configured", ErrUploadFailed)
	}

	locator, err := r.uploader.Upload(ctx, portmedia.Upload{
		Kind:        kind,
		PublicID:    r.publicID(kind),
		Filename:    f.Filename,
		ContentType: f.ContentType,
		Body:        bytes.NewReader(f.Data),
	})
	if err != nil {
		metrics.RecordUpload(string(kind), false)
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	locator = strings.TrimSpace(locator)
	if locator == "" {
		metrics.RecordUpload(string(kind), false)
		return "", fmt.Errorf("%w: empty locator", ErrUploadFailed)
	}

	metrics.RecordUpload(string(kind), true)
	return locator, nil
}

// publicID: <kind>-<unix millis>-<sufijo> para no pisar subidas del mismo milisegundo.
func (r *Relay) publicID(kind portmedia.Kind) string {
	return fmt.Sprintf("%s-%d-%s", kind, r.now().UnixMilli(), uuid.NewString()[:8])
}
