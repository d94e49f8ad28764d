package user

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
	ErrUserNotFound = errors.New("user not found")
	ErrDuplicate    = errors.New("user already exists")
)

// Credentials is the slice of a user row the auth service needs to
// verify a login.
type Credentials struct {
	ID           int64
	PasswordHash []byte
}

type UserRepository interface {
	Create(ctx context.Context, email, username string, passHash []byte) (int64, error)
	GetByEmail(ctx context.Context, email string) (*Credentials, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	ListExcept(ctx context.Context, userID int64) ([]models.User, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) UserRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, email, username string, passHash []byte) (int64, error) {
	query := "INSERT INTO users (email, username, password_hash) VALUES ($1, $2, $3) RETURNING id"

	var userID int64
	err := r.db.QueryRow(ctx, query, email, username, passHash).Scan(&userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}

	return userID, nil
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*Credentials, error) {
	query := "SELECT id, password_hash FROM users WHERE email = $1"

	var creds Credentials
	err := r.db.QueryRow(ctx, query, email).Scan(&creds.ID, &creds.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &creds, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := "SELECT id, email, username, created_at FROM users WHERE id = $1"

	var u models.User
	err := r.db.QueryRow(ctx, query, id).Scan(&u.ID, &u.Email, &u.Username, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &u, nil
}

func (r *postgresRepository) ListExcept(ctx context.Context, userID int64) ([]models.User, error) {
	query := "SELECT id, email, username, created_at FROM users WHERE id != $1 ORDER BY id"

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}
