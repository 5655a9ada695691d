package services

import (
	"context"
	"errors"

	"github.com/weichunauto/apigate/repositories"
	"github.com/weichunauto/apigate/token"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenEncoder issues signed tokens for a principal
type TokenEncoder interface {
	Encode(p token.Principal) (string, error)
}

// AuthService checks credentials and issues access tokens
type AuthService struct {
	users   repositories.UserRepository
	encoder TokenEncoder
	logger  *zap.Logger
}

// NewAuthService creates a new AuthService instance
func NewAuthService(users repositories.UserRepository, encoder TokenEncoder, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:   users,
		encoder: encoder,
		logger:  logger,
	}
}

// Login verifies the account password and returns a signed access token.
// An unknown account and a wrong password both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, account, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, account)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.logger.Info("login rejected", zap.String("reason", "unknown account"))
			return "", ErrInvalidCredentials
		}
		return "", WrapInternal("failed to load user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.Info("login rejected",
				zap.String("reason", "password mismatch"),
				zap.String("user_id", user.ID.String()))
			return "", ErrInvalidCredentials
		}
		return "", WrapInternal("failed to verify password", err)
	}

	accessToken, err := s.encoder.Encode(token.Principal{
		ID:    user.ID.String(),
		Name:  user.FullName,
		Email: user.Email,
	})
	if err != nil {
		return "", WrapInternal("failed to issue token", err)
	}

	s.logger.Info("login succeeded", zap.String("user_id", user.ID.String()))
	return accessToken, nil
}
