package memory

import (
	"ai-chat-backend/internal/models"
	"ai-chat-backend/internal/store"
	"context"
	"slices"
	"sync"
)

// Compile-time check to ensure Store implements store.Store
var _ store.Store = (*Store)(nil)

// userLog is a single user's conversation. Its lock is the only thing that
// serializes ledger mutations, so users never contend with each other.
type userLog struct {
	mu       sync.RWMutex
	messages []models.Message
}

// Store keeps users and their message logs for the lifetime of the process.
type Store struct {
	mu    sync.RWMutex
	users map[string]*models.User
	logs  map[string]*userLog
}

func NewStore() *Store {
	return &Store{
		users: make(map[string]*models.User),
		logs:  make(map[string]*userLog),
	}
}

// GetUserByUsername returns a copy of the stored user.
// Returns store.ErrNotFound if the user does not exist.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	user, ok := s.users[username]
	s.mu.RUnlock()
	if !ok {
		return nil, store.ErrNotFound
	}

	u := *user
	return &u, nil
}

// PutUser inserts or replaces a user record. Any existing log is kept.
func (s *Store) PutUser(ctx context.Context, user *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	u := *user
	s.mu.Lock()
	s.users[u.Username] = &u
	s.mu.Unlock()
	return nil
}

// Seed registers a user together with a pre-existing conversation.
// The messages are renumbered so that ids match their positions.
func (s *Store) Seed(user models.User, messages ...models.Message) {
	log := &userLog{messages: make([]models.Message, len(messages))}
	for i, m := range messages {
		m.ID = i
		log.messages[i] = m
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.Username] = &user
	s.logs[user.Username] = log
}

func (s *Store) ViewMessages(ctx context.Context, username string, fn func(log []models.Message) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l := s.logFor(username)
	l.mu.RLock()
	defer l.mu.RUnlock()
	return fn(l.messages)
}

func (s *Store) UpdateMessages(ctx context.Context, username string, fn func(log *[]models.Message) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l := s.logFor(username)
	l.mu.Lock()
	defer l.mu.Unlock()

	// fn works on a copy so a failed update leaves nothing behind.
	working := slices.Clone(l.messages)
	if err := fn(&working); err != nil {
		return err
	}
	l.messages = working
	return nil
}

// logFor returns the log for username, creating an empty one on first use.
// Users may come from another credential backend, so logs are not tied to
// the users map.
func (s *Store) logFor(username string) *userLog {
	s.mu.RLock()
	l, ok := s.logs[username]
	s.mu.RUnlock()
	if ok {
		return l
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok = s.logs[username]; ok {
		return l
	}
	l = &userLog{}
	s.logs[username] = l
	return l
}
