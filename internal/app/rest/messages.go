package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/zentra/zentrachat/internal/models"
	"github.com/zentra/zentrachat/internal/service/message"
)

type MessageHandler struct {
	log     *slog.Logger
	service *message.MessageService
}

func NewMessageHandler(log *slog.Logger, service *message.MessageService) *MessageHandler {
	return &MessageHandler{log: log, service: service}
}

type CreateMessageRequest struct {
	Author string `json:"author"`
	Body   string `json:"body"`
}

type ListMessagesResponse struct {
	Messages []models.Message `json:"messages"`
}

func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "rest.MessageHandler.Create"
	log := h.log.With(slog.String("op", op))

	var req CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := h.service.Create(r.Context(), req.Author, req.Body)
	if err != nil {
		var vErr *message.ValidationError
		if errors.As(err, &vErr) {
			respondError(w, http.StatusBadRequest, vErr.Reason)
			return
		}
		log.Error("failed to create message", slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "could not store message")
		return
	}

	log.Info("message created", slog.Int64("id", msg.ID), slog.String("author", msg.Author))
	respondJSON(w, http.StatusCreated, msg)
}

func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	const op = "rest.MessageHandler.List"
	log := h.log.With(slog.String("op", op))

	var after *time.Time
	if raw := r.URL.Query().Get("after"); raw != "" {
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "after must be an RFC 3339 timestamp")
			return
		}
		after = &t
	}

	messages, err := h.service.ListAfter(r.Context(), after)
	if err != nil {
		log.Error("failed to list messages", slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "could not read messages")
		return
	}

	if messages == nil {
		messages = []models.Message{}
	}
	respondJSON(w, http.StatusOK, ListMessagesResponse{Messages: messages})
}
