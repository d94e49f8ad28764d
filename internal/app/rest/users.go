package rest

import (
	"log/slog"
	"net/http"

	"github.com/zentra/zentrachat/internal/models"
	"github.com/zentra/zentrachat/internal/repository/user"
)

type UserHandler struct {
	log      *slog.Logger
	userRepo user.UserRepository
}

func NewUserHandler(log *slog.Logger, userRepo user.UserRepository) *UserHandler {
	return &UserHandler{log: log, userRepo: userRepo}
}

type ListUsersResponse struct {
	Users []models.User `json:"users"`
}

// List returns every registered user except the caller, mirroring a
// contact picker: you send interests to the people on this list.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	const op = "rest.UserHandler.List"
	log := h.log.With(slog.String("op", op))

	identity, ok := identityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	users, err := h.userRepo.ListExcept(r.Context(), identity.UserID)
	if err != nil {
		log.Error("failed to list users", slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "could not read users")
		return
	}

	if users == nil {
		users = []models.User{}
	}
	respondJSON(w, http.StatusOK, ListUsersResponse{Users: users})
}
