package message

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/zentra/zentrachat/internal/models"
	"github.com/zentra/zentrachat/internal/repository/message"
)

type Limits struct {
	MaxAuthorLen int `yaml:"max_author_len" env:"MAX_AUTHOR_LEN" env-default:"64"`
	MaxBodyLen   int `yaml:"max_body_len" env:"MAX_BODY_LEN" env-default:"4096"`
}

type MessageService struct {
	repo   message.MessageRepository
	limits Limits
}

func NewMessageService(repo message.MessageRepository, limits Limits) *MessageService {
	return &MessageService{repo: repo, limits: limits}
}

func (s *MessageService) Create(ctx context.Context, author, body string) (models.Message, error) {
	if author == "" {
		return models.Message{}, &ValidationError{Field: "author", Reason: "author is required"}
	}
	if body == "" {
		return models.Message{}, &ValidationError{Field: "body", Reason: "body is required"}
	}
	if n := utf8.RuneCountInString(author); n > s.limits.MaxAuthorLen {
		return models.Message{}, &ValidationError{
			Field:  "author",
			Reason: fmt.Sprintf("author exceeds %d characters", s.limits.MaxAuthorLen),
		}
	}
	if n := utf8.RuneCountInString(body); n > s.limits.MaxBodyLen {
		return models.Message{}, &ValidationError{
			Field:  "body",
			Reason: fmt.Sprintf("body exceeds %d characters", s.limits.MaxBodyLen),
		}
	}

	msg, err := s.repo.Create(ctx, author, body)
	if err != nil {
		return models.Message{}, &StoreError{Err: err}
	}

	return msg, nil
}

// ListAfter returns messages with created_at strictly greater than
// after, or every message when after is nil. Each call is a fresh read;
// no cursor survives between calls.
func (s *MessageService) ListAfter(ctx context.Context, after *time.Time) ([]models.Message, error) {
	messages, err := s.repo.ListAfter(ctx, after)
	if err != nil {
		return nil, &StoreError{Err: err}
	}

	return messages, nil
}
