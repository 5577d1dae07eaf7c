package respond

import (
	"context"
	"encoding/json"
	"net/http"
)

// ErrorBody es el formato de error que consume el cliente: {"message": "..."}.
type ErrorBody struct {
	Message string `json:"message"`
}

// MessageBody acompaña respuestas de éxito que llevan un mensaje y un payload.
type MessageBody struct {
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, ErrorBody{Message: msg})
}

func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, MessageBody{Message: msg})
}

type errSlotKey struct{}

// ErrorSlot guarda la causa de un 500 para que el log del request la incluya.
type ErrorSlot struct {
	Err error
}

func WithErrorSlot(ctx context.Context) (context.Context, *ErrorSlot) {
	slot := &ErrorSlot{}
	return context.WithValue(ctx, errSlotKey{}, slot), slot
}

// Internal responde 500 genérico; el detalle queda solo en el log.
func Internal(w http.ResponseWriter, r *http.Request, err error) {
	if slot, ok := r.Context().Value(errSlotKey{}).(*ErrorSlot); ok && slot != nil {
		slot.Err = err
	}
	Error(w, http.StatusInternalServerError, "internal error")
}
