package store

import (
	"ai-chat-backend/internal/models"
	"context"
	"errors"
)

// ErrNotFound is returned when a specific record is not found.
var ErrNotFound = errors.New("record not found")

// UserStore is the credential store consulted on login and on every
// protected request.
type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// UserWriter seeds user records at startup. Request handling never writes users.
type UserWriter interface {
	PutUser(ctx context.Context, user *models.User) error
}

// MessageStore holds one ordered message log per username.
//
// ViewMessages runs fn while holding shared access to the log; UpdateMessages
// runs fn with exclusive access, and whatever fn leaves in *log becomes the new
// log only if fn returns nil. Implementations must never let a View observe an
// Update halfway through.
type MessageStore interface {
	ViewMessages(ctx context.Context, username string, fn func(log []models.Message) error) error
	UpdateMessages(ctx context.Context, username string, fn func(log *[]models.Message) error) error
}

// Store bundles both halves for backends that can serve them together.
type Store interface {
	UserStore
	UserWriter
	MessageStore
}
