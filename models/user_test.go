package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	user := NewUser("Alice Liddell", "alice@example.com", "$2a$10$hash")

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "Alice Liddell", user.FullName)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "$2a$10$hash", user.PasswordHash)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)
	assert.Equal(t, "users", user.TableName())
}

func TestUserJSONOmitsPasswordHash(t *testing.T) {
	user := NewUser("Alice Liddell", "alice@example.com", "$2a$10$hash")

	data, err := json.Marshal(user)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "password")
	assert.NotContains(t, string(data), "$2a$10$hash")
	assert.Contains(t, string(data), `"full_name":"Alice Liddell"`)
}
