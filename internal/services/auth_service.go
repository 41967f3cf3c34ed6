package services

import (
	"ai-chat-backend/internal/auth"
	"ai-chat-backend/internal/config"
	"ai-chat-backend/internal/models"
	"ai-chat-backend/internal/store"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

type AuthService struct {
	users  store.UserStore
	cfg    *config.Config
	logger *zap.Logger
	now    func() time.Time

	// dummyHash is compared against when the user does not exist so that
	// both login failures cost the same bcrypt work.
	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users store.UserStore, cfg *config.Config, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:  users,
		cfg:    cfg,
		logger: logger.Named("auth"),
		now:    time.Now,
	}
}

// WithClock replaces the time source used to issue and check tokens.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

func (s *AuthService) tokenExpiration() time.Duration {
	if s.cfg.TokenExpiration > 0 {
		return s.cfg.TokenExpiration
	}
	return auth.DefaultTokenExpiration
}

// Authenticate checks a username/password pair against the credential store.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.burnDummyCompare(password)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("user lookup failed", zap.String("username", username), zap.Error(err))
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	ok, err := auth.CheckPasswordHash(password, user.HashedPassword)
	if err != nil {
		// A corrupt stored hash must not let anyone in, nor reveal itself.
		s.logger.Error("stored password hash unreadable", zap.String("username", username), zap.Error(err))
		return nil, ErrInvalidCredentials
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) burnDummyCompare(password string) {
	s.dummyOnce.Do(func() {
		hash, err := auth.HashPassword("dummy-password", s.cfg.BcryptCost)
		if err != nil {
			s.logger.Warn("dummy hash generation failed", zap.Error(err))
			return
		}
		s.dummyHash = hash
	})
	if s.dummyHash != "" {
		_, _ = auth.CheckPasswordHash(password, s.dummyHash)
	}
}

// IssueToken signs an access token for user that expires after the
// configured lifetime (60 minutes by default).
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	token, err := auth.NewAccessToken(user.Username, s.cfg.JWTSecret, s.tokenExpiration(), s.now())
	if err != nil {
		s.logger.Error("signing token failed", zap.String("username", user.Username), zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrCreatingToken, err)
	}
	return token, nil
}

// Login verifies user credentials and returns an access token and the user.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", nil, err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info("user logged in", zap.String("username", user.Username))
	return token, user, nil
}

// ResolveToken validates a bearer token and looks its subject up again in
// the credential store. Every failure is reported as ErrUnauthenticated.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := auth.ParseAccessToken(token, s.cfg.JWTSecret, s.now)
	if err != nil {
		s.logger.Debug("token rejected", zap.Error(err))
		return nil, ErrUnauthenticated
	}

	user, err := s.users.GetUserByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.Debug("token subject not found", zap.String("username", claims.Subject))
			return nil, ErrUnauthenticated
		}
		s.logger.Error("user lookup failed", zap.String("username", claims.Subject), zap.Error(err))
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// RegisterUser hashes password with the configured cost and stores the user.
// Used for startup seeding only.
func (s *AuthService) RegisterUser(ctx context.Context, w store.UserWriter, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return errors.New("username and password cannot be empty")
	}

	hash, err := auth.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return err
	}
	if err := w.PutUser(ctx, &models.User{Username: username, HashedPassword: hash}); err != nil {
		return fmt.Errorf("failed to store user: %w", err)
	}

	s.logger.Info("user registered", zap.String("username", username))
	return nil
}
