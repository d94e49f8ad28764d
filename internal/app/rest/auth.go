package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/zentra/zentrachat/internal/service/auth"
)

var validate = validator.New()

type AuthHandler struct {
	log     *slog.Logger
	service *auth.AuthService
}

func NewAuthHandler(log *slog.Logger, service *auth.AuthService) *AuthHandler {
	return &AuthHandler{log: log, service: service}
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=1,max=64"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type RegisterResponse struct {
	UserID int64 `json:"user_id"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	const op = "rest.AuthHandler.Register"
	log := h.log.With(slog.String("op", op))

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID, err := h.service.Register(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUserAlreadyExists) {
			respondError(w, http.StatusConflict, err.Error())
			return
		}
		log.Error("failed to register user", slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "could not create user")
		return
	}

	log.Info("user registered", slog.Int64("user_id", userID))
	respondJSON(w, http.StatusCreated, RegisterResponse{UserID: userID})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	const op = "rest.AuthHandler.Login"
	log := h.log.With(slog.String("op", op))

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		log.Error("failed to log in user", slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "could not log in")
		return
	}

	respondJSON(w, http.StatusOK, LoginResponse{AccessToken: token})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	const op = "rest.AuthHandler.Logout"
	log := h.log.With(slog.String("op", op))

	identity, ok := identityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := h.service.Logout(r.Context(), identity.SessionID); err != nil {
		log.Error("failed to delete session", slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "could not log out")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
