package memory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	portmedia "petplus/internal/ports/media"
)

// Uploader es el relay de dev/tests: descarta los bytes y devuelve un locator determinístico.
type Uploader struct {
	mu       sync.Mutex
	baseURL  string
	uploads  []portmedia.Upload
	failWith error
}

func NewUploader(baseURL string) *Uploader {
	if baseURL == "" {
		baseURL = "https://media.local/petplus"
	}
	return &Uploader{baseURL: baseURL}
}

// FailWith hace que las próximas subidas fallen (para probar abortos).
func (u *Uploader) FailWith(err error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.failWith = err
}

func (u *Uploader) Upload(_ context.Context, in portmedia.Upload) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.failWith != nil {
		return "", u.failWith
	}
	if in.PublicID == "" {
		return "", errors.New("memory uploader: public id required")
	}
	if in.Body != nil {
		_, _ = io.Copy(io.Discard, in.Body)
	}

	in.Body = nil
	u.uploads = append(u.uploads, in)
	return fmt.Sprintf("%s/%ss/%s", u.baseURL, in.Kind, in.PublicID), nil
}

// Count devuelve cuántas subidas se aceptaron.
func (u *Uploader) Count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.uploads)
}
