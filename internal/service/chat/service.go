package chat

import (
	"context"

	"github.com/zentra/zentrachat/internal/models"
	"github.com/zentra/zentrachat/internal/repository/chat"
)

type ChatService struct {
	chatRepo chat.ChatRepository
}

func NewChatService(chatRepo chat.ChatRepository) *ChatService {
	return &ChatService{chatRepo: chatRepo}
}

func (s *ChatService) ListForUser(ctx context.Context, userID int64) ([]models.Chat, error) {
	return s.chatRepo.ListForUser(ctx, userID)
}
