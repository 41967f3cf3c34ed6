package postgres

import (
	"ai-chat-backend/internal/models"
	"ai-chat-backend/internal/store"
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Compile-time checks for the credential half of the store contract.
var (
	_ store.UserStore  = (*UserStore)(nil)
	_ store.UserWriter = (*UserStore)(nil)
)

// UserStore serves user credentials from Postgres. Message logs are not kept here.
type UserStore struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewUserStore(db *pgxpool.Pool, logger *zap.Logger) *UserStore {
	return &UserStore{db: db, logger: logger.Named("postgres")}
}

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
    username        TEXT PRIMARY KEY,
    hashed_password TEXT NOT NULL,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// EnsureSchema creates the users table if it does not exist yet.
func (s *UserStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createUsersTable); err != nil {
		return fmt.Errorf("database error creating users table: %w", err)
	}
	return nil
}

const getUserByUsername = `-- name: GetUserByUsername :one
SELECT username, hashed_password
FROM users
WHERE username = $1;
`

// GetUserByUsername retrieves a user by username.
// Returns store.ErrNotFound if the user does not exist.
func (s *UserStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRow(ctx, getUserByUsername, username).Scan(
		&user.Username,
		&user.HashedPassword,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		s.logger.Error("query user failed", zap.String("username", username), zap.Error(err))
		return nil, fmt.Errorf("database error fetching user by username: %w", err)
	}
	return user, nil
}

const upsertUser = `-- name: UpsertUser :exec
INSERT INTO users (username, hashed_password)
VALUES ($1, $2)
ON CONFLICT (username) DO UPDATE
SET hashed_password = EXCLUDED.hashed_password, updated_at = NOW();
`

// PutUser inserts the user or replaces its password hash.
func (s *UserStore) PutUser(ctx context.Context, user *models.User) error {
	_, err := s.db.Exec(ctx, upsertUser, user.Username, user.HashedPassword)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			s.logger.Error("upsert user failed",
				zap.String("username", user.Username),
				zap.String("code", pgErr.Code),
				zap.String("detail", pgErr.Detail),
			)
		} else {
			s.logger.Error("upsert user failed", zap.String("username", user.Username), zap.Error(err))
		}
		return fmt.Errorf("database error upserting user: %w", err)
	}

	s.logger.Info("user upserted", zap.String("username", user.Username))
	return nil
}
