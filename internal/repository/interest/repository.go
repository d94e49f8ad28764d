package interest

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zentra/zentrachat/internal/models"
)

var (
	ErrNotFound  = errors.New("interest not found")
	ErrDuplicate = errors.New("interest already sent")
)

type InterestRepository interface {
	Create(ctx context.Context, senderID, receiverID int64) (models.Interest, error)
	GetByID(ctx context.Context, id int64) (*models.Interest, error)
	UpdateStatus(ctx context.Context, id int64, status models.InterestStatus) error
	ListForUser(ctx context.Context, userID int64) ([]models.Interest, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) InterestRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, senderID, receiverID int64) (models.Interest, error) {
	query := `
		INSERT INTO interests (sender_id, receiver_id, status)
		VALUES ($1, $2, 'pending')
		RETURNING id, created_at
	`

	interest := models.Interest{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     models.InterestPending,
	}
	err := r.db.QueryRow(ctx, query, senderID, receiverID).Scan(&interest.ID, &interest.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.Interest{}, ErrDuplicate
		}
		return models.Interest{}, fmt.Errorf("failed to insert interest: %w", err)
	}

	return interest, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*models.Interest, error) {
	query := "SELECT id, sender_id, receiver_id, status, created_at FROM interests WHERE id = $1"

	var interest models.Interest
	err := r.db.QueryRow(ctx, query, id).Scan(
		&interest.ID, &interest.SenderID, &interest.ReceiverID, &interest.Status, &interest.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get interest: %w", err)
	}

	return &interest, nil
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id int64, status models.InterestStatus) error {
	query := "UPDATE interests SET status = $2 WHERE id = $1"

	tag, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update interest status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *postgresRepository) ListForUser(ctx context.Context, userID int64) ([]models.Interest, error) {
	query := `
		SELECT id, sender_id, receiver_id, status, created_at
		FROM interests
		WHERE sender_id = $1 OR receiver_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query interests: %w", err)
	}
	defer rows.Close()

	var interests []models.Interest
	for rows.Next() {
		var interest models.Interest
		if err := rows.Scan(
			&interest.ID, &interest.SenderID, &interest.ReceiverID, &interest.Status, &interest.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan interest row: %w", err)
		}
		interests = append(interests, interest)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating interest rows: %w", err)
	}

	return interests, nil
}
