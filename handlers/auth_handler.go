package handlers

import (
	"context"
	"net/http"

	"github.com/weichunauto/apigate/middleware"
	"github.com/weichunauto/apigate/request"
	"github.com/weichunauto/apigate/utils"
	"go.uber.org/zap"
)

// Authenticator exchanges credentials for an access token
type Authenticator interface {
	Login(ctx context.Context, account, password string) (string, error)
}

// LoginParams is the body of POST /api/login
type LoginParams struct {
	Account  string `json:"account" validate:"email_format" message:"invalid email format, please check."`
	Password string `json:"password" validate:"required" message:"password is required"`
}

// LoginResponse carries the issued token
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// AuthHandler handles login and identity requests
type AuthHandler struct {
	auth   Authenticator
	logger *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth Authenticator, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		logger: logger,
	}
}

// HandleLogin handles POST /api/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	params, err := request.JSON[LoginParams](r)
	if err != nil {
		HandleError(w, err, h.logger)
		return
	}

	accessToken, err := h.auth.Login(r.Context(), params.Account, params.Password)
	if err != nil {
		HandleError(w, err, h.logger)
		return
	}

	if err := utils.WriteOK(w, "login success", LoginResponse{AccessToken: accessToken}); err != nil {
		h.logger.Error("failed to write login response", zap.Error(err))
	}
}

// HandleGetUserInfo handles GET /api/get_user_info
func (h *AuthHandler) HandleGetUserInfo(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		_ = utils.WriteUnauthorized(w, "")
		return
	}

	if err := utils.WriteOK(w, "", principal); err != nil {
		h.logger.Error("failed to write user info response", zap.Error(err))
	}
}
