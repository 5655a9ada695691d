package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		write     bool
		wantLevel zapcore.Level
	}{
		{name: "success", status: http.StatusOK, write: true, wantLevel: zapcore.InfoLevel},
		{name: "implicit 200", status: 0, write: true, wantLevel: zapcore.InfoLevel},
		{name: "client error", status: http.StatusBadRequest, write: true, wantLevel: zapcore.WarnLevel},
		{name: "server error", status: http.StatusInternalServerError, write: false, wantLevel: zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)

			handler := chimw.RequestID(RequestLogger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
				if tt.write {
					_, _ = w.Write([]byte("hello"))
				}
			})))

			req := httptest.NewRequest(http.MethodGet, "/api/users/1/bob?active=true", nil)
			req.Header.Set("X-Request-Id", "req-42")
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))

			entries := logs.FilterMessage("http request").All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantLevel, entries[0].Level)

			fields := entries[0].ContextMap()
			wantStatus := tt.status
			if wantStatus == 0 {
				wantStatus = http.StatusOK
			}
			assert.Equal(t, "req-42", fields["request_id"])
			assert.Equal(t, http.MethodGet, fields["method"])
			assert.Equal(t, "/api/users/1/bob", fields["path"])
			assert.EqualValues(t, wantStatus, fields["status"])
			assert.Contains(t, fields, "latency")
		})
	}
}
