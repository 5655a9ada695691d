package repositories

import (
	"context"
	"errors"

	"github.com/weichunauto/apigate/models"
)

// ErrNotFound is returned when a lookup matches no row
var ErrNotFound = errors.New("not found")

// UserRepository handles user data operations
type UserRepository interface {
	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// List returns one page of users ordered by creation time, and the total count
	List(ctx context.Context, limit, offset int) ([]*models.User, int64, error)
}
