package media

import (
	"context"
	"io"
)

// Kind decide carpeta y transformación en el media host.
type Kind string

const (
	KindPet  Kind = "pet"
	KindPost Kind = "post"
	KindUser Kind = "user"
)

type Upload struct {
	Kind        Kind
	PublicID    string
	Filename    string
	ContentType string
	Body        io.Reader
}

// Uploader reenvía los bytes al host externo y devuelve el locator (URL) resultante.
type Uploader interface {
	Upload(ctx context.Context, in Upload) (string, error)
}
