package services

import (
	"ai-chat-backend/internal/models"
	"ai-chat-backend/internal/store"
	"context"
	"fmt"

	"go.uber.org/zap"
)

// ReplyGenerator produces the automated answer to a user message.
type ReplyGenerator interface {
	Generate() string
}

// MessageService is the per-user message ledger: ids are assigned here, at
// append time, and always equal the message's position in the log.
type MessageService struct {
	messages store.MessageStore
	replies  ReplyGenerator
	logger   *zap.Logger
}

func NewMessageService(messages store.MessageStore, replies ReplyGenerator, logger *zap.Logger) *MessageService {
	return &MessageService{
		messages: messages,
		replies:  replies,
		logger:   logger.Named("ledger"),
	}
}

// List returns the user's whole log, or only the messages after afterID when
// it is set. afterID must name an existing message.
func (s *MessageService) List(ctx context.Context, user *models.User, afterID *int) ([]models.Message, error) {
	if user == nil {
		return nil, ErrNotFound
	}

	var out []models.Message
	err := s.messages.ViewMessages(ctx, user.Username, func(log []models.Message) error {
		start := 0
		if afterID != nil {
			if *afterID < 0 || *afterID >= len(log) {
				return fmt.Errorf("%w: message %d", ErrNotFound, *afterID)
			}
			start = *afterID + 1
		}
		out = make([]models.Message, len(log)-start)
		copy(out, log[start:])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AppendUserMessage appends text as a user message followed by a generated
// reply. Both land in a single update, so readers see the pair or neither.
func (s *MessageService) AppendUserMessage(ctx context.Context, user *models.User, text string) (models.Message, models.Message, error) {
	if user == nil {
		return models.Message{}, models.Message{}, ErrNotFound
	}

	var userMsg, aiMsg models.Message
	err := s.messages.UpdateMessages(ctx, user.Username, func(log *[]models.Message) error {
		userMsg = models.Message{ID: len(*log), Sender: models.SenderUser, Text: text}
		*log = append(*log, userMsg)

		aiMsg = models.Message{ID: len(*log), Sender: models.SenderAI, Text: s.replies.Generate()}
		*log = append(*log, aiMsg)
		return nil
	})
	if err != nil {
		s.logger.Error("append failed", zap.String("username", user.Username), zap.Error(err))
		return models.Message{}, models.Message{}, fmt.Errorf("failed to append message: %w", err)
	}

	s.logger.Debug("message pair appended",
		zap.String("username", user.Username),
		zap.Int("user_message_id", userMsg.ID),
		zap.Int("ai_message_id", aiMsg.ID),
	)
	return userMsg, aiMsg, nil
}

// EditMessage replaces the text of one of the user's own messages.
// Automated replies cannot be edited.
func (s *MessageService) EditMessage(ctx context.Context, user *models.User, index int, text string) error {
	if user == nil {
		return ErrNotFound
	}

	return s.messages.UpdateMessages(ctx, user.Username, func(log *[]models.Message) error {
		if index < 0 || index >= len(*log) {
			return fmt.Errorf("%w: message %d", ErrNotFound, index)
		}
		if (*log)[index].Sender == models.SenderAI {
			return fmt.Errorf("%w: message %d was sent by AI", ErrForbidden, index)
		}
		(*log)[index].Text = text
		return nil
	})
}
