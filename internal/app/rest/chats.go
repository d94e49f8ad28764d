package rest

import (
	"log/slog"
	"net/http"

	"github.com/zentra/zentrachat/internal/models"
	"github.com/zentra/zentrachat/internal/service/chat"
)

type ChatHandler struct {
	log     *slog.Logger
	service *chat.ChatService
}

func NewChatHandler(log *slog.Logger, service *chat.ChatService) *ChatHandler {
	return &ChatHandler{log: log, service: service}
}

type ListChatsResponse struct {
	Chats []models.Chat `json:"chats"`
}

func (h *ChatHandler) List(w http.ResponseWriter, r *http.Request) {
	const op = "rest.ChatHandler.List"
	log := h.log.With(slog.String("op", op))

	identity, ok := identityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	chats, err := h.service.ListForUser(r.Context(), identity.UserID)
	if err != nil {
		log.Error("failed to list chats", slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "could not read chats")
		return
	}

	if chats == nil {
		chats = []models.Chat{}
	}
	respondJSON(w, http.StatusOK, ListChatsResponse{Chats: chats})
}
