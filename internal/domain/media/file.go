package media

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

// FormField es el nombre del campo multipart que trae la imagen.
const FormField = "photo"

var (
	ErrTooLarge = errors.New("file too large")
	ErrBadForm  = errors.New("invalid multipart form")
)

// File es el adjunto ya leído en memoria (a lo sumo maxBytes). Nunca se persiste localmente.
type File struct {
	Filename    string
	ContentType string // declarado por el cliente
	Data        []byte
}

func (f *File) Size() int { return len(f.Data) }

// IsMultipart indica si el request viene como multipart/form-data.
func IsMultipart(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "multipart/form-data"
}

// ReadMultipart parsea el form y devuelve sus valores y la foto (nil si no vino).
// Un archivo que supera maxBytes devuelve ErrTooLarge antes de tocar nada.
func ReadMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64) (url.Values, *File, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	// margen para los campos de texto del form
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+(1<<20))
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, nil, ErrTooLarge
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrBadForm, err)
	}

	values := url.Values{}
	for k, v := range r.MultipartForm.Value {
		values[k] = v
	}

	parts := r.MultipartForm.File[FormField]
	if len(parts) == 0 {
		return values, nil, nil
	}
	if len(parts) > 1 {
		return nil, nil, fmt.Errorf("%w: only one %q file is accepted", ErrBadForm, FormField)
	}

	f, err := readPart(parts[0], maxBytes)
	if err != nil {
		return nil, nil, err
	}
	return values, f, nil
}

func readPart(fh *multipart.FileHeader, maxBytes int64) (*File, error) {
	if fh.Size > maxBytes {
		return nil, ErrTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadForm, err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadForm, err)
	}
	if int64(len(data)) > maxBytes {
		return nil, ErrTooLarge
	}

	return &File{
		Filename:    fh.Filename,
		ContentType: strings.TrimSpace(fh.Header.Get("Content-Type")),
		Data:        data,
	}, nil
}
