package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"leveluplife/models"
)

func TestRecoveryMiddleware(t *testing.T) {
	h := RecoveryMiddleware(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"InternalServerError"`)
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "given")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "given", seen)
}

func TestSecurityHeaders(t *testing.T) {
	h := SecurityHeadersMiddleware(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
}

func TestValidateJSON(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		status      int
	}{
		{"ok", "application/json", `{"rating": 5, "task_id": "8d9a6a1e-51a4-4f0a-9d0b-2f8f5d2f7a01", "user_id": "8d9a6a1e-51a4-4f0a-9d0b-2f8f5d2f7a02"}`, 0},
		{"wrong content type", "text/plain", `{}`, http.StatusUnsupportedMediaType},
		{"malformed", "application/json", `{`, http.StatusUnprocessableEntity},
		{"unknown field", "application/json", `{"stars": 5}`, http.StatusUnprocessableEntity},
		{"out of range", "application/json; charset=utf-8", `{"rating": 11, "task_id": "8d9a6a1e-51a4-4f0a-9d0b-2f8f5d2f7a01", "user_id": "8d9a6a1e-51a4-4f0a-9d0b-2f8f5d2f7a02"}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/ratings", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			rec := httptest.NewRecorder()

			var in models.RatingCreate
			err := ValidateJSON(rec, req, &in)
			if tt.status == 0 {
				require.NoError(t, err)
				assert.Equal(t, 5, in.Rating)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestMaxBodyMiddleware(t *testing.T) {
	h := MaxBodyMiddleware(4)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in models.RatingCreate
		_ = ValidateJSON(w, r, &in)
	}))
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"rating": 5}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
