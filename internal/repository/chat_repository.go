package repository

import (
	"context"

	"github.com/spec-kit/datachat-gateway/internal/domain"
)

// ChatRepository defines persistence access for chats and their messages.
type ChatRepository interface {
	CreateChat(ctx context.Context, chat *domain.Chat) error
	CreateMessage(ctx context.Context, message *domain.Message) error
	ListByUser(ctx context.Context, userID string) ([]domain.Chat, error)
}

type chatRepository struct {
	db DB
}

// NewChatRepository returns a Postgres-backed implementation.
func NewChatRepository(db DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) CreateChat(ctx context.Context, chat *domain.Chat) error {
	const query = `
        INSERT INTO chats (title, user_id)
        VALUES ($1, $2)
        RETURNING id, created_at`

	return r.db.QueryRow(ctx, query,
		chat.Title,
		chat.UserID,
	).Scan(&chat.ID, &chat.CreatedAt)
}

func (r *chatRepository) CreateMessage(ctx context.Context, message *domain.Message) error {
	const query = `
        INSERT INTO messages (chat_id, content)
        VALUES ($1, $2)
        RETURNING id, created_at`

	return r.db.QueryRow(ctx, query,
		message.ChatID,
		message.Content,
	).Scan(&message.ID, &message.CreatedAt)
}

// ListByUser returns the user's chats in insertion order.
func (r *chatRepository) ListByUser(ctx context.Context, userID string) ([]domain.Chat, error) {
	const query = `
        SELECT id, title, user_id, created_at
        FROM chats WHERE user_id=$1
        ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	chats := []domain.Chat{}
	for rows.Next() {
		var chat domain.Chat
		if err := rows.Scan(&chat.ID, &chat.Title, &chat.UserID, &chat.CreatedAt); err != nil {
			return nil, err
		}
		chats = append(chats, chat)
	}
	return chats, rows.Err()
}
