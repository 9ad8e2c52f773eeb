package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/datachat-gateway/internal/api/dto"
	"github.com/spec-kit/datachat-gateway/internal/auth"
	"github.com/spec-kit/datachat-gateway/internal/service"
	apperrors "github.com/spec-kit/datachat-gateway/pkg/util"
)

// ChatHandler exposes the chat relay endpoints. All routes sit behind the
// auth middleware; the owning user id comes from the verified token claim.
type ChatHandler struct {
	chats *service.ChatService
}

// NewChatHandler constructs the handler.
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chats: chatService}
}

// Create handles POST /api/v1/chat/create.
func (h *ChatHandler) Create(c *fiber.Ctx) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("You are not logged in")
	}

	var req dto.CreateChatRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid inputs", nil)
	}

	chat, err := h.chats.CreateChat(c.UserContext(), req.Title, userID)
	if err != nil {
		return clientOrInternal(err)
	}

	return c.JSON(dto.CreateChatResponse{ID: chat.ID})
}

// Message handles POST /api/v1/chat/message.
func (h *ChatHandler) Message(c *fiber.Ctx) error {
	if _, ok := auth.UserIDFromContext(c); !ok {
		return apperrors.NewUnauthorized("You are not logged in")
	}

	var req dto.PostMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid inputs", nil)
	}

	if _, err := h.chats.PostMessage(c.UserContext(), req.ChatID, req.Content); err != nil {
		return clientOrInternal(err)
	}

	return c.JSON(fiber.Map{"message": "created"})
}

// List handles GET /api/v1/chat/.
func (h *ChatHandler) List(c *fiber.Ctx) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("You are not logged in")
	}

	chats, err := h.chats.ListChats(c.UserContext(), userID)
	if err != nil {
		return clientOrInternal(err)
	}

	return c.JSON(chats)
}
