package service

import (
	"context"
	"strings"

	"github.com/spec-kit/datachat-gateway/internal/domain"
	"github.com/spec-kit/datachat-gateway/internal/repository"
	apperrors "github.com/spec-kit/datachat-gateway/pkg/util"
)

// ChatService relays chat CRUD to storage. The user id always comes from a
// verified token claim, never from the request body.
type ChatService struct {
	chats repository.ChatRepository
}

// NewChatService builds the service.
func NewChatService(chats repository.ChatRepository) *ChatService {
	return &ChatService{chats: chats}
}

// CreateChat starts a new conversation for the user.
func (s *ChatService) CreateChat(ctx context.Context, title, userID string) (*domain.Chat, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperrors.NewValidationError("Invalid inputs", map[string]any{"title": "required"})
	}

	chat := &domain.Chat{Title: title, UserID: userID}
	if err := s.chats.CreateChat(ctx, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

// PostMessage appends a message to a chat.
func (s *ChatService) PostMessage(ctx context.Context, chatID, content string) (*domain.Message, error) {
	details := map[string]any{}
	if chatID == "" {
		details["chatId"] = "required"
	}
	if strings.TrimSpace(content) == "" {
		details["content"] = "required"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("Invalid inputs", details)
	}

	message := &domain.Message{ChatID: chatID, Content: content}
	if err := s.chats.CreateMessage(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// ListChats returns the user's chats in insertion order.
func (s *ChatService) ListChats(ctx context.Context, userID string) ([]domain.Chat, error) {
	return s.chats.ListByUser(ctx, userID)
}
