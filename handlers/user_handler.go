package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/weichunauto/apigate/models"
	"github.com/weichunauto/apigate/request"
	"github.com/weichunauto/apigate/utils"
	"go.uber.org/zap"
)

// UserLister returns pages of users
type UserLister interface {
	List(ctx context.Context, limit, offset int) ([]*models.User, int64, error)
}

// UserPathParams are the route params of GET /api/users/{id}/{name}
type UserPathParams struct {
	ID   int    `form:"id" json:"id" validate:"gt=0" message:"id must be a positive number"`
	Name string `form:"name" json:"name" validate:"required,max=64"`
}

// UserQueryParams are the query params of GET /api/users/{id}/{name}
type UserQueryParams struct {
	Active *bool `form:"active"`
}

// UserLookup echoes the decoded path and query params
type UserLookup struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// ListUsersParams are the query params of GET /api/users
type ListUsersParams struct {
	request.Pagination
}

// UserView is the public representation of a user
type UserView struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserView(u *models.User) UserView {
	return UserView{
		ID:        u.ID.String(),
		FullName:  u.FullName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// UserHandler handles user requests
type UserHandler struct {
	users  UserLister
	logger *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users UserLister, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: logger,
	}
}

// HandleGetUser handles GET /api/users/{id}/{name}
func (h *UserHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	path, err := request.Path[UserPathParams](r)
	if err != nil {
		HandleError(w, err, h.logger)
		return
	}

	query, err := request.Query[UserQueryParams](r)
	if err != nil {
		HandleError(w, err, h.logger)
		return
	}

	lookup := UserLookup{ID: path.ID, Name: path.Name}
	if query.Active != nil {
		lookup.Active = *query.Active
	}

	if err := utils.WriteOK(w, "", lookup); err != nil {
		h.logger.Error("failed to write user response", zap.Error(err))
	}
}

// HandleListUsers handles GET /api/users
func (h *UserHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	params, err := request.Query[ListUsersParams](r)
	if err != nil {
		HandleError(w, err, h.logger)
		return
	}

	users, total, err := h.users.List(r.Context(), params.Size, params.Offset())
	if err != nil {
		HandleError(w, err, h.logger)
		return
	}

	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, newUserView(u))
	}

	if err := utils.WriteOK(w, "", request.NewPage(params.Pagination, total, views)); err != nil {
		h.logger.Error("failed to write user list response", zap.Error(err))
	}
}
