package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	t.Run("successful write", func(t *testing.T) {
		w := httptest.NewRecorder()
		data := map[string]string{"message": "test"}

		err := WriteJSON(w, http.StatusOK, data)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var response map[string]string
		err = json.NewDecoder(w.Body).Decode(&response)
		require.NoError(t, err)
		assert.Equal(t, "test", response["message"])
	})

	t.Run("nil data", func(t *testing.T) {
		w := httptest.NewRecorder()

		err := WriteJSON(w, http.StatusNoContent, nil)
		require.NoError(t, err)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

func TestWriteOK(t *testing.T) {
	w := httptest.NewRecorder()

	err := WriteOK(w, "login success", map[string]string{"access_token": "abc"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code":200,"msg":"login success","data":{"access_token":"abc"}}`, w.Body.String())
}

func TestWriteOKWithoutData(t *testing.T) {
	w := httptest.NewRecorder()

	require.NoError(t, WriteOK(w, "done", nil))

	assert.JSONEq(t, `{"code":200,"msg":"done"}`, w.Body.String())
}

func TestErrorWriters(t *testing.T) {
	tests := []struct {
		name       string
		write      func(w http.ResponseWriter) error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "business error",
			write:      func(w http.ResponseWriter) error { return WriteBizError(w, "user or password is not correct!") },
			wantStatus: http.StatusOK,
			wantBody:   `{"code":0,"msg":"user or password is not correct!"}`,
		},
		{
			name:       "bad request",
			write:      func(w http.ResponseWriter) error { return WriteBadRequest(w, "page number must be greater than 0") },
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"code":0,"msg":"page number must be greater than 0"}`,
		},
		{
			name:       "unauthorized default message",
			write:      func(w http.ResponseWriter) error { return WriteUnauthorized(w, "") },
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"code":0,"msg":"unauthenticated"}`,
		},
		{
			name:       "not found default message",
			write:      func(w http.ResponseWriter) error { return WriteNotFound(w, "") },
			wantStatus: http.StatusNotFound,
			wantBody:   `{"code":0,"msg":"Not Found"}`,
		},
		{
			name:       "method not allowed",
			write:      WriteMethodNotAllowed,
			wantStatus: http.StatusMethodNotAllowed,
			wantBody:   `{"code":0,"msg":"Method Not Allowed"}`,
		},
		{
			name:       "internal server error default message",
			write:      func(w http.ResponseWriter) error { return WriteInternalServerError(w, "") },
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"code":0,"msg":"Internal Server Error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			require.NoError(t, tt.write(w))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantBody+"\n", w.Body.String())
		})
	}
}
