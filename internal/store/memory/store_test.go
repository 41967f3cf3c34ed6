package memory

import (
	"ai-chat-backend/internal/models"
	"ai-chat-backend/internal/store"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetUserByUsername(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.PutUser(ctx, &models.User{Username: "bob@example.com", HashedPassword: "h"}))

	tests := []struct {
		name     string
		username string
		wantErr  error
	}{
		{name: "existing user", username: "bob@example.com"},
		{name: "unknown user", username: "nobody@example.com", wantErr: store.ErrNotFound},
		{name: "case sensitive", username: "BOB@example.com", wantErr: store.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := s.GetUserByUsername(ctx, tt.username)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.username, user.Username)
			assert.Equal(t, "h", user.HashedPassword)
		})
	}
}

func TestStore_GetUserByUsername_ReturnsCopy(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.PutUser(ctx, &models.User{Username: "bob", HashedPassword: "h"}))

	user, err := s.GetUserByUsername(ctx, "bob")
	require.NoError(t, err)
	user.HashedPassword = "tampered"

	again, err := s.GetUserByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "h", again.HashedPassword)
}

func TestStore_GetUserByUsername_CanceledContext(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.GetUserByUsername(ctx, "bob")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_Seed_RenumbersMessages(t *testing.T) {
	s := NewStore()
	s.Seed(models.User{Username: "carol"},
		models.Message{ID: 7, Sender: models.SenderUser, Text: "a"},
		models.Message{ID: 3, Sender: models.SenderAI, Text: "b"},
	)

	var got []models.Message
	err := s.ViewMessages(context.Background(), "carol", func(log []models.Message) error {
		got = append(got, log...)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].ID)
	assert.Equal(t, 1, got[1].ID)
}

func TestStore_ViewMessages_UnknownUserIsEmpty(t *testing.T) {
	s := NewStore()

	called := false
	err := s.ViewMessages(context.Background(), "ghost", func(log []models.Message) error {
		called = true
		assert.Empty(t, log)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestStore_UpdateMessages_FailedUpdateIsDiscarded(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.UpdateMessages(ctx, "dave", func(log *[]models.Message) error {
		*log = append(*log, models.Message{ID: 0, Sender: models.SenderUser, Text: "lost"})
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_ = s.ViewMessages(ctx, "dave", func(log []models.Message) error {
		assert.Empty(t, log)
		return nil
	})
}

func TestStore_UpdateMessages_FailedEditDoesNotLeak(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	s.Seed(models.User{Username: "erin"}, models.Message{Sender: models.SenderUser, Text: "original"})

	err := s.UpdateMessages(ctx, "erin", func(log *[]models.Message) error {
		(*log)[0].Text = "changed"
		return errors.New("rejected")
	})
	require.Error(t, err)

	_ = s.ViewMessages(ctx, "erin", func(log []models.Message) error {
		assert.Equal(t, "original", log[0].Text)
		return nil
	})
}

func TestStore_UpdateMessages_ConcurrentAppendsStayDense(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.UpdateMessages(ctx, "frank", func(log *[]models.Message) error {
				*log = append(*log, models.Message{ID: len(*log), Sender: models.SenderUser})
				*log = append(*log, models.Message{ID: len(*log), Sender: models.SenderAI})
				return nil
			})
		}()
	}
	wg.Wait()

	_ = s.ViewMessages(ctx, "frank", func(log []models.Message) error {
		require.Len(t, log, 2*writers)
		for i, m := range log {
			assert.Equal(t, i, m.ID)
			if i%2 == 0 {
				assert.Equal(t, models.SenderUser, m.Sender)
			} else {
				assert.Equal(t, models.SenderAI, m.Sender)
			}
		}
		return nil
	})
}

func TestSeedDemo(t *testing.T) {
	s := NewStore()
	SeedDemo(s)

	user, err := s.GetUserByUsername(context.Background(), DemoUsername)
	require.NoError(t, err)
	assert.NotEmpty(t, user.HashedPassword)

	_ = s.ViewMessages(context.Background(), DemoUsername, func(log []models.Message) error {
		require.Len(t, log, 2)
		assert.Equal(t, models.SenderUser, log[0].Sender)
		assert.Equal(t, models.SenderAI, log[1].Sender)
		return nil
	})
}
