package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/zentra/zentrachat/internal/app/rest"
	"github.com/zentra/zentrachat/internal/config"
	chatRepo "github.com/zentra/zentrachat/internal/repository/chat"
	interestRepo "github.com/zentra/zentrachat/internal/repository/interest"
	messageRepo "github.com/zentra/zentrachat/internal/repository/message"
	sessionRepo "github.com/zentra/zentrachat/internal/repository/session"
	userRepo "github.com/zentra/zentrachat/internal/repository/user"
	authService "github.com/zentra/zentrachat/internal/service/auth"
	chatService "github.com/zentra/zentrachat/internal/service/chat"
	interestService "github.com/zentra/zentrachat/internal/service/interest"
	messageService "github.com/zentra/zentrachat/internal/service/message"
	"github.com/zentra/zentrachat/internal/storage/postgres"
	"github.com/zentra/zentrachat/internal/storage/redis"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)
	log.Info("starting zentrachat", slog.String("env", cfg.Env))

	ctx := context.Background()

	dbPool, err := postgres.NewStorage(ctx, cfg.Postgres)
	if err != nil {
		log.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	log.Info("connected to postgres")

	redisClient, err := redis.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info("connected to redis")

	messages := messageRepo.NewPostgresRepository(dbPool)
	users := userRepo.NewPostgresRepository(dbPool)
	interests := interestRepo.NewPostgresRepository(dbPool)
	chats := chatRepo.NewPostgresRepository(dbPool)
	sessions := sessionRepo.NewSessionRepository(redisClient, cfg.Auth.TokenTTL)

	msgService := messageService.NewMessageService(messages, cfg.Messages)
	authSvc := authService.NewAuthService(users, sessions, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	intSvc := interestService.NewInterestService(interests, chats, users)
	chatSvc := chatService.NewChatService(chats)

	application := rest.New(log, cfg.HTTP, msgService, authSvc, intSvc, chatSvc, users)

	errChan := make(chan error, 1)
	go func() {
		if err := application.Run(); err != nil {
			errChan <- err
		}
	}()

	quitChan := make(chan os.Signal, 1)
	signal.Notify(quitChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quitChan:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errChan:
		log.Error("server error, initiating shutdown", slog.String("error", err.Error()))
	}

	application.Stop()
	log.Info("gracefully stopped")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}
