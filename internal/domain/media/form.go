package media

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// ErrBadJSON cubre bodies JSON mal formados.
var ErrBadJSON = errors.New("invalid json")

const maxJSONBody = 1 << 20

// Fields son los campos de texto de un request, vengan como JSON o como multipart.
type Fields map[string]string

func (f Fields) Get(key string) string {
	return strings.TrimSpace(f[key])
}

// Raw devuelve el valor sin recortar (passwords).
func (f Fields) Raw(key string) string {
	return f[key]
}

func (f Fields) Has(key string) bool {
	_, ok := f[key]
	return ok
}

func (f Fields) Bool(key string) bool {
	b, err := strconv.ParseBool(f.Get(key))
	return err == nil && b
}

// ReadFields acepta JSON o multipart/form-data. La foto solo puede venir por multipart.
func ReadFields(w http.ResponseWriter, r *http.Request, maxBytes int64) (Fields, *File, error) {
	if IsMultipart(r) {
		values, f, err := ReadMultipart(w, r, maxBytes)
		if err != nil {
			return nil, nil, err
		}
		out := make(Fields, len(values))
		for k, v := range values {
			if len(v) > 0 {
				out[k] = v[0]
			}
		}
		return out, f, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		// body vacío = ningún campo enviado
		if !errors.Is(err, io.EOF) {
			return nil, nil, ErrBadJSON
		}
	}

	out := make(Fields, len(raw))
	for k, v := range raw {
		switch t := v.(type) {
		case nil:
			// null equivale a no enviado
		case string:
			out[k] = t
		case bool:
			out[k] = strconv.FormatBool(t)
		case float64:
			out[k] = strconv.FormatFloat(t, 'f', -1, 64)
		default:
			return nil, nil, fmt.Errorf("%w: field %q must be a scalar", ErrBadJSON, k)
		}
	}
	return out, nil, nil
}

// HTTPStatus traduce errores de lectura/validación/subida a status y mensaje.
// ok=false si err no pertenece a este paquete.
func HTTPStatus(err error) (status int, msg string, ok bool) {
	var rej *RejectedError
	switch {
	case errors.As(err, &rej):
		return http.StatusBadRequest, rej.Error(), true
	case errors.Is(err, ErrTooLarge):
		return http.StatusRequestEntityTooLarge, "file too large", true
	case errors.Is(err, ErrBadForm):
		return http.StatusBadRequest, "invalid multipart form", true
	case errors.Is(err, ErrBadJSON):
		return http.StatusBadRequest, "invalid json", true
	case errors.Is(err, ErrUploadFailed):
		return http.StatusBadGateway, "image upload failed", true
	default:
		return 0, "", false
	}
}
