package chat

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zentra/zentrachat/internal/models"
)

type ChatRepository interface {
	Create(ctx context.Context, user1ID, user2ID int64) (models.Chat, error)
	Exists(ctx context.Context, user1ID, user2ID int64) (bool, error)
	ListForUser(ctx context.Context, userID int64) ([]models.Chat, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) ChatRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, user1ID, user2ID int64) (models.Chat, error) {
	query := "INSERT INTO chats (user1_id, user2_id) VALUES ($1, $2) RETURNING id, created_at"

	chat := models.Chat{User1ID: user1ID, User2ID: user2ID}
	err := r.db.QueryRow(ctx, query, user1ID, user2ID).Scan(&chat.ID, &chat.CreatedAt)
	if err != nil {
		return models.Chat{}, fmt.Errorf("failed to create chat: %w", err)
	}

	return chat, nil
}

// Exists checks both orientations of the pair: a chat between alice and
// bob is the same chat regardless of who accepted the interest.
func (r *postgresRepository) Exists(ctx context.Context, user1ID, user2ID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM chats
			WHERE (user1_id = $1 AND user2_id = $2) OR (user1_id = $2 AND user2_id = $1)
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query, user1ID, user2ID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check chat existence: %w", err)
	}

	return exists, nil
}

func (r *postgresRepository) ListForUser(ctx context.Context, userID int64) ([]models.Chat, error) {
	query := `
		SELECT id, user1_id, user2_id, created_at
		FROM chats
		WHERE user1_id = $1 OR user2_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query chats: %w", err)
	}
	defer rows.Close()

	var chats []models.Chat
	for rows.Next() {
		var chat models.Chat
		if err := rows.Scan(&chat.ID, &chat.User1ID, &chat.User2ID, &chat.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat row: %w", err)
		}
		chats = append(chats, chat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chat rows: %w", err)
	}

	return chats, nil
}
