package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/weichunauto/apigate/models"
	"github.com/weichunauto/apigate/token"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*models.User, int64, error) {
	args := m.Called(ctx, limit, offset)
	if users := args.Get(0); users != nil {
		return users.([]*models.User), args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

// MockTokenEncoder is a mock implementation of TokenEncoder
type MockTokenEncoder struct {
	mock.Mock
}

func (m *MockTokenEncoder) Encode(p token.Principal) (string, error) {
	args := m.Called(p)
	return args.String(0), args.Error(1)
}
