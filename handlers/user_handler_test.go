package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/weichunauto/apigate/models"
	"github.com/weichunauto/apigate/request"
	"github.com/weichunauto/apigate/services"
	"github.com/weichunauto/apigate/utils"
	"go.uber.org/zap"
)

func newUserRouter(h *UserHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/users", h.HandleListUsers)
	r.Get("/api/users/{id}/{name}", h.HandleGetUser)
	return r
}

func TestHandleGetUser(t *testing.T) {
	router := newUserRouter(NewUserHandler(new(MockUserLister), zap.NewNop()))

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantData   string
		wantMsg    string
	}{
		{
			name:       "active defaults to false",
			target:     "/api/users/42/alice",
			wantStatus: http.StatusOK,
			wantData:   `{"id":42,"name":"alice","active":false}`,
		},
		{
			name:       "active from query",
			target:     "/api/users/42/alice?active=true",
			wantStatus: http.StatusOK,
			wantData:   `{"id":42,"name":"alice","active":true}`,
		},
		{
			name:       "id must be positive",
			target:     "/api/users/0/alice",
			wantStatus: http.StatusBadRequest,
			wantMsg:    "id must be a positive number",
		},
		{
			name:       "id not a number",
			target:     "/api/users/abc/alice",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "active not a bool",
			target:     "/api/users/42/alice?active=maybe",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.target, nil))

			require.Equal(t, tt.wantStatus, w.Code)
			env := decodeEnvelope(t, w)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, utils.CodeSuccess, env.Code)
				assert.JSONEq(t, tt.wantData, string(env.Data))
				return
			}
			assert.Equal(t, utils.CodeFailure, env.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, env.Msg)
			}
		})
	}
}

func TestHandleListUsers(t *testing.T) {
	t.Run("default page", func(t *testing.T) {
		users := new(MockUserLister)
		alice := models.NewUser("Alice", "alice@example.com", "hash")
		users.On("List", mock.Anything, request.DefaultPageSize, 0).Return([]*models.User{alice}, int64(1), nil)

		w := httptest.NewRecorder()
		newUserRouter(NewUserHandler(users, zap.NewNop())).
			ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users", nil))

		require.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w)

		var page request.Page[UserView]
		require.NoError(t, json.Unmarshal(env.Data, &page))
		assert.Equal(t, int64(1), page.Total)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 10, page.Size)
		require.Len(t, page.Data, 1)
		assert.Equal(t, alice.ID.String(), page.Data[0].ID)
		assert.Equal(t, "Alice", page.Data[0].FullName)
		assert.NotContains(t, string(env.Data), "hash")
		users.AssertExpectations(t)
	})

	t.Run("offset from page and size", func(t *testing.T) {
		users := new(MockUserLister)
		users.On("List", mock.Anything, 5, 10).Return(nil, int64(12), nil)

		w := httptest.NewRecorder()
		newUserRouter(NewUserHandler(users, zap.NewNop())).
			ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users?page=3&size=5", nil))

		require.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w)
		assert.JSONEq(t, `{"data":[],"total":12,"page":3,"size":5}`, string(env.Data))
		users.AssertExpectations(t)
	})

	t.Run("page zero is rejected", func(t *testing.T) {
		users := new(MockUserLister)

		w := httptest.NewRecorder()
		newUserRouter(NewUserHandler(users, zap.NewNop())).
			ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users?page=0", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "page number must be greater than 0", decodeEnvelope(t, w).Msg)
		users.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("size above limit is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		newUserRouter(NewUserHandler(new(MockUserLister), zap.NewNop())).
			ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users?size=101", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "page size must be between 1 and 100", decodeEnvelope(t, w).Msg)
	})

	t.Run("page beyond limit never reaches the repository", func(t *testing.T) {
		users := new(MockUserLister)

		w := httptest.NewRecorder()
		newUserRouter(NewUserHandler(users, zap.NewNop())).
			ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users?page=100000000000000000&size=100", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "page number must be at most 1000000", decodeEnvelope(t, w).Msg)
		users.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("service failure", func(t *testing.T) {
		users := new(MockUserLister)
		users.On("List", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, int64(0), services.WrapInternal("failed to list users", errors.New("timeout")))

		w := httptest.NewRecorder()
		newUserRouter(NewUserHandler(users, zap.NewNop())).
			ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
