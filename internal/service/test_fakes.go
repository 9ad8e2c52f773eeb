package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/datachat-gateway/internal/domain"
	"github.com/spec-kit/datachat-gateway/internal/repository"
)

// FakeUserRepository is a test-only in-memory repository.UserRepository.
// It mirrors the storage unique index by rejecting duplicate emails on
// insert, and exposes error fields for behavior injection.
type FakeUserRepository struct {
	mu        sync.RWMutex
	byEmail   map[string]*domain.User
	nextID    int
	CreateErr error
	GetErr    error
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{byEmail: make(map[string]*domain.User)}
}

func (f *FakeUserRepository) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.CreateErr != nil {
		return f.CreateErr
	}
	if _, exists := f.byEmail[user.Email]; exists {
		return repository.ErrDuplicateEmail
	}

	f.nextID++
	user.ID = "user-" + strconv.Itoa(f.nextID)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	stored := *user
	f.byEmail[user.Email] = &stored
	return nil
}

func (f *FakeUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, user := range f.byEmail {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *FakeUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	user, ok := f.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

// FakeChatRepository is a test-only in-memory repository.ChatRepository.
type FakeChatRepository struct {
	mu       sync.RWMutex
	chats    []domain.Chat
	messages []domain.Message
	nextID   int
	Err      error
}

func NewFakeChatRepository() *FakeChatRepository {
	return &FakeChatRepository{}
}

func (f *FakeChatRepository) CreateChat(_ context.Context, chat *domain.Chat) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.nextID++
	chat.ID = "chat-" + strconv.Itoa(f.nextID)
	chat.CreatedAt = time.Now()
	f.chats = append(f.chats, *chat)
	return nil
}

func (f *FakeChatRepository) CreateMessage(_ context.Context, message *domain.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.nextID++
	message.ID = "msg-" + strconv.Itoa(f.nextID)
	message.CreatedAt = time.Now()
	f.messages = append(f.messages, *message)
	return nil
}

func (f *FakeChatRepository) ListByUser(_ context.Context, userID string) ([]domain.Chat, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.Err != nil {
		return nil, f.Err
	}
	chats := []domain.Chat{}
	for _, chat := range f.chats {
		if chat.UserID == userID {
			chats = append(chats, chat)
		}
	}
	return chats, nil
}
