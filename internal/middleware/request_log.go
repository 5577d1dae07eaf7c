package middleware

import (
	"net/http"
	"time"

	"petplus/internal/platform/logger"
	"petplus/internal/platform/respond"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestLog escribe una línea por request con status y duración.
func RequestLog(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			ctx, slot := respond.WithErrorSlot(r.Context())

			next.ServeHTTP(ww, r.WithContext(ctx))

			fields := map[string]any{
				"request_id":  chimw.GetReqID(r.Context()),
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      ww.Status(),
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
			}
			if uid, ok := UserID(r.Context()); ok {
				fields["user_id"] = uid
			}
			if slot.Err != nil {
				fields["error"] = slot.Err
			}

			switch {
			case ww.Status() >= 500:
				log.Error("request", fields)
			case ww.Status() >= 400:
				log.Warn("request", fields)
			default:
				log.Info("request", fields)
			}
		})
	}
}
