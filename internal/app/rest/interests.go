package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/zentra/zentrachat/internal/models"
	"github.com/zentra/zentrachat/internal/service/interest"
)

type InterestHandler struct {
	log     *slog.Logger
	service *interest.InterestService
}

func NewInterestHandler(log *slog.Logger, service *interest.InterestService) *InterestHandler {
	return &InterestHandler{log: log, service: service}
}

type ListInterestsResponse struct {
	Interests []models.Interest `json:"interests"`
}

func (h *InterestHandler) Send(w http.ResponseWriter, r *http.Request) {
	const op = "rest.InterestHandler.Send"
	log := h.log.With(slog.String("op", op))

	identity, ok := identityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	receiverID, err := strconv.ParseInt(r.PathValue("user_id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "user_id must be an integer")
		return
	}

	created, err := h.service.Send(r.Context(), identity.UserID, receiverID)
	if err != nil {
		switch {
		case errors.Is(err, interest.ErrSelfInterest):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, interest.ErrReceiverNotFound):
			respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, interest.ErrAlreadySent):
			respondError(w, http.StatusConflict, err.Error())
		default:
			log.Error("failed to send interest", slog.String("error", err.Error()))
			respondError(w, http.StatusInternalServerError, "could not send interest")
		}
		return
	}

	log.Info("interest sent",
		slog.Int64("sender_id", identity.UserID),
		slog.Int64("receiver_id", receiverID))
	respondJSON(w, http.StatusCreated, created)
}

func (h *InterestHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.answer(w, r, "rest.InterestHandler.Accept", h.service.Accept)
}

func (h *InterestHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.answer(w, r, "rest.InterestHandler.Reject", h.service.Reject)
}

func (h *InterestHandler) answer(
	w http.ResponseWriter,
	r *http.Request,
	op string,
	fn func(ctx context.Context, interestID, userID int64) (*models.Interest, error),
) {
	log := h.log.With(slog.String("op", op))

	identity, ok := identityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	interestID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "id must be an integer")
		return
	}

	answered, err := fn(r.Context(), interestID, identity.UserID)
	if err != nil {
		switch {
		case errors.Is(err, interest.ErrNotFound):
			respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, interest.ErrNotReceiver):
			respondError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, interest.ErrNotPending):
			respondError(w, http.StatusConflict, err.Error())
		default:
			log.Error("failed to answer interest", slog.String("error", err.Error()))
			respondError(w, http.StatusInternalServerError, "could not answer interest")
		}
		return
	}

	respondJSON(w, http.StatusOK, answered)
}

func (h *InterestHandler) List(w http.ResponseWriter, r *http.Request) {
	const op = "rest.InterestHandler.List"
	log := h.log.With(slog.String("op", op))

	identity, ok := identityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	interests, err := h.service.ListForUser(r.Context(), identity.UserID)
	if err != nil {
		log.Error("failed to list interests", slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "could not read interests")
		return
	}

	if interests == nil {
		interests = []models.Interest{}
	}
	respondJSON(w, http.StatusOK, ListInterestsResponse{Interests: interests})
}
