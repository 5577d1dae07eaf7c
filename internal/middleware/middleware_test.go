package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"petplus/internal/platform/logger"
	"petplus/internal/platform/respond"
	"petplus/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	token  string
	claims auth.Claims
}

func (s stubVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if token != s.token {
		return auth.Claims{}, errors.New("bad token")
	}
	return s.claims, nil
}

func TestAuthContext_RequireAuth(t *testing.T) {
	v := stubVerifier{token: "good", claims: auth.Claims{UserID: "u-1"}}

	var seen string
	h := AuthContext(v)(RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})))

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic good", http.StatusUnauthorized},
		{"invalid", "Bearer nope", http.StatusUnauthorized},
		{"valid", "bearer good", http.StatusNoContent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusUnauthorized {
				assert.JSONEq(t, `{"message":"unauthorized"}`, rec.Body.String())
				assert.Empty(t, seen)
			} else {
				assert.Equal(t, "u-1", seen)
			}
		})
	}
}

func TestRecover_WritesJSON500(t *testing.T) {
	h := Recover(logger.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"internal error"}`, rec.Body.String())
}

type entry struct {
	level  string
	fields map[string]any
}

type captureLogger struct {
	entries *[]entry
}

func newCapture() captureLogger { return captureLogger{entries: &[]entry{}} }

func (c captureLogger) With(map[string]any) logger.Logger { return c }
func (c captureLogger) Debug(_ string, f map[string]any)  { c.add("debug", f) }
func (c captureLogger) Info(_ string, f map[string]any)   { c.add("info", f) }
func (c captureLogger) Warn(_ string, f map[string]any)   { c.add("warn", f) }
func (c captureLogger) Error(_ string, f map[string]any)  { c.add("error", f) }

func (c captureLogger) add(level string, f map[string]any) {
	*c.entries = append(*c.entries, entry{level: level, fields: f})
}

func TestRequestLog_RecordsInternalErrorCause(t *testing.T) {
	log := newCapture()
	cause := errors.New("db down")

	h := RequestLog(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.Internal(w, r, cause)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pets/mypets", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"internal error"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "db down")

	require.Len(t, *log.entries, 1)
	got := (*log.entries)[0]
	assert.Equal(t, "error", got.level)
	assert.Equal(t, cause, got.fields["error"])
	assert.Equal(t, 500, got.fields["status"])
	assert.Equal(t, "/pets/mypets", got.fields["path"])
}

func TestRequestLog_LevelByStatus(t *testing.T) {
	log := newCapture()
	h := AuthContext(nil)(RequestLog(log)(RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users/me", nil))

	ctx := WithClaims(context.Background(), auth.Claims{UserID: "u-1"})
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users/me", nil).WithContext(ctx))

	require.Len(t, *log.entries, 2)
	assert.Equal(t, "warn", (*log.entries)[0].level)
	assert.NotContains(t, (*log.entries)[0].fields, "error")
	assert.Equal(t, "info", (*log.entries)[1].level)
	assert.Equal(t, "u-1", (*log.entries)[1].fields["user_id"])
}
