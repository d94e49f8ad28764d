package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/zentra/zentrachat/internal/repository/user"
	"github.com/zentra/zentrachat/internal/service/auth"
	"github.com/zentra/zentrachat/internal/service/chat"
	"github.com/zentra/zentrachat/internal/service/interest"
	"github.com/zentra/zentrachat/internal/service/message"
)

type Config struct {
	Port         int           `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type App struct {
	log        *slog.Logger
	httpServer *http.Server
	port       int
}

func New(
	log *slog.Logger,
	config Config,
	messageService *message.MessageService,
	authService *auth.AuthService,
	interestService *interest.InterestService,
	chatService *chat.ChatService,
	userRepo user.UserRepository,
) *App {
	messageHandler := NewMessageHandler(log, messageService)
	authHandler := NewAuthHandler(log, authService)
	interestHandler := NewInterestHandler(log, interestService)
	chatHandler := NewChatHandler(log, chatService)
	userHandler := NewUserHandler(log, userRepo)

	authed := func(next http.HandlerFunc) http.HandlerFunc {
		return authMiddleware(log, authService, next)
	}

	router := http.NewServeMux()

	// The message board is the public surface; everything else requires
	// a logged-in user.
	router.HandleFunc("POST /messages", messageHandler.Create)
	router.HandleFunc("GET /messages", messageHandler.List)

	router.HandleFunc("POST /auth/register", authHandler.Register)
	router.HandleFunc("POST /auth/login", authHandler.Login)
	router.HandleFunc("POST /auth/logout", authed(authHandler.Logout))

	router.HandleFunc("GET /users", authed(userHandler.List))
	router.HandleFunc("POST /users/{user_id}/interests", authed(interestHandler.Send))
	router.HandleFunc("GET /interests", authed(interestHandler.List))
	router.HandleFunc("POST /interests/{id}/accept", authed(interestHandler.Accept))
	router.HandleFunc("POST /interests/{id}/reject", authed(interestHandler.Reject))
	router.HandleFunc("GET /chats", authed(chatHandler.List))

	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(config.Port),
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return &App{log: log, httpServer: srv, port: config.Port}
}

func (a *App) Run() error {
	const op = "rest.App.Run"

	a.log.With(slog.String("op", op)).
		Info("server started", slog.Int("port", a.port))

	if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (a *App) Stop() {
	const op = "rest.App.Stop"

	a.log.With(slog.String("op", op)).
		Info("stopping HTTP server", slog.Int("port", a.port))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("server closed with error", slog.String("error", err.Error()))
	}
}
