package services

import (
	"context"

	"github.com/weichunauto/apigate/models"
	"github.com/weichunauto/apigate/repositories"
	"go.uber.org/zap"
)

// UserService serves read access to user accounts
type UserService struct {
	users  repositories.UserRepository
	logger *zap.Logger
}

// NewUserService creates a new UserService instance
func NewUserService(users repositories.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		logger: logger,
	}
}

// List returns one page of users and the total number of users
func (s *UserService) List(ctx context.Context, limit, offset int) ([]*models.User, int64, error) {
	users, total, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, WrapInternal("failed to list users", err)
	}

	s.logger.Debug("listed users",
		zap.Int("limit", limit),
		zap.Int("offset", offset),
		zap.Int("count", len(users)),
		zap.Int64("total", total))

	return users, total, nil
}
