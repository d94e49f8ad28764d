package message

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zentra/zentrachat/internal/models"
)

type MessageRepository interface {
	Create(ctx context.Context, author, body string) (models.Message, error)
	ListAfter(ctx context.Context, after *time.Time) ([]models.Message, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) MessageRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, author, body string) (models.Message, error) {
	query := "INSERT INTO messages (author, body) VALUES ($1, $2) RETURNING id, created_at"

	msg := models.Message{Author: author, Body: body}
	err := r.db.QueryRow(ctx, query, author, body).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return models.Message{}, fmt.Errorf("failed to insert message: %w", err)
	}

	return msg, nil
}

// ListAfter re-reads from the store on every call. Ordering is
// created_at ascending with id as the tie-breaker, so two messages
// written in the same clock tick still come back in insert order.
func (r *postgresRepository) ListAfter(ctx context.Context, after *time.Time) ([]models.Message, error) {
	query := `
		SELECT id, author, body, created_at
		FROM messages
		ORDER BY created_at, id
	`
	args := []any{}
	if after != nil {
		query = `
			SELECT id, author, body, created_at
			FROM messages
			WHERE created_at > $1
			ORDER BY created_at, id
		`
		args = append(args, *after)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.ID, &msg.Author, &msg.Body, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", err)
	}

	return messages, nil
}
