package media

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// AllowedExtensions es la allow-list de formatos que acepta el media host.
var AllowedExtensions = []string{"jpg", "jpeg", "png", "webp"}

type RejectReason string

const (
	ReasonEmpty       RejectReason = "empty"
	ReasonExtension   RejectReason = "extension"
	ReasonContentType RejectReason = "content_type"
)

// RejectedError describe por qué un adjunto no se aceptó. Se devuelve antes de cualquier escritura.
type RejectedError struct {
	Reason      RejectReason
	Ext         string
	ContentType string
	Allowed     []string
}

func (e *RejectedError) Error() string {
	switch e.Reason {
	case ReasonExtension:
		return fmt.Sprintf("unsupported file extension %q (allowed: %s)", e.Ext, strings.Join(e.Allowed, ", "))
	case ReasonContentType:
		return fmt.Sprintf("unsupported content type %q: only images are allowed", e.ContentType)
	default:
		return "empty file"
	}
}

// Validate chequea tipo declarado, extensión y contenido real (sniffing).
func Validate(f *File) error {
	if f == nil || len(f.Data) == 0 {
		return &RejectedError{Reason: ReasonEmpty}
	}

	ext := strings.ToLower(filepath.Ext(f.Filename))
	if !extensionAllowed(ext) {
		return &RejectedError{Reason: ReasonExtension, Ext: ext, Allowed: AllowedExtensions}
	}

	if !strings.HasPrefix(strings.ToLower(f.ContentType), "image/") {
		return &RejectedError{Reason: ReasonContentType, ContentType: f.ContentType}
	}

	// El Content-Type lo declara el cliente; el contenido también tiene que ser imagen.
	detected := mimetype.Detect(f.Data).String()
	if !strings.HasPrefix(detected, "image/") {
		return &RejectedError{Reason: ReasonContentType, ContentType: detected}
	}

	return nil
}

func extensionAllowed(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return false
	}
	for _, a := range AllowedExtensions {
		if a == ext {
			return true
		}
	}
	return false
}
