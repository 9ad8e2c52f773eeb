package dto

// CreateChatRequest payload for starting a conversation.
type CreateChatRequest struct {
	Title string `json:"title"`
}

// CreateChatResponse returns the new chat id.
type CreateChatResponse struct {
	ID string `json:"id"`
}

// PostMessageRequest payload for appending a message.
type PostMessageRequest struct {
	ChatID  string `json:"chatId"`
	Content string `json:"content"`
}
