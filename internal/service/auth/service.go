package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/zentra/zentrachat/internal/repository/session"
	"github.com/zentra/zentrachat/internal/repository/user"
)

var (
	ErrEmailRequired      = errors.New("email is required")
	ErrUsernameRequired   = errors.New("username is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrUserAlreadyExists  = errors.New("user with this email or username already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// SessionStore is the slice of the session repository the auth service
// needs. *session.SessionRepository satisfies it.
type SessionStore interface {
	Create(ctx context.Context, sessionID string, s session.Session) error
	Get(ctx context.Context, sessionID string) (*session.Session, error)
	Delete(ctx context.Context, sessionID string) error
}

type AuthService struct {
	userRepo    user.UserRepository
	sessions    SessionStore
	tokenSecret string
	tokenTTL    time.Duration
}

func NewAuthService(userRepo user.UserRepository, sessions SessionStore, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessions:    sessions,
		tokenSecret: secret,
		tokenTTL:    ttl,
	}
}

func (s *AuthService) Register(ctx context.Context, email, username, password string) (int64, error) {
	if email == "" {
		return 0, ErrEmailRequired
	}
	if username == "" {
		return 0, ErrUsernameRequired
	}
	if password == "" {
		return 0, ErrPasswordRequired
	}
	if len(password) < 8 {
		return 0, ErrPasswordTooShort
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	userID, err := s.userRepo.Create(ctx, email, username, passHash)
	if err != nil {
		if errors.Is(err, user.ErrDuplicate) {
			return 0, ErrUserAlreadyExists
		}
		return 0, err
	}

	return userID, nil
}

// Login verifies the credentials, opens a session in Redis and returns
// a signed access token. The token's jti is the session key, so
// deleting the session revokes the token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" {
		return "", ErrEmailRequired
	}
	if password == "" {
		return "", ErrPasswordRequired
	}

	creds, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword(creds.PasswordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	sessionID := uuid.NewString()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        sessionID,
		Subject:   strconv.FormatInt(creds.ID, 10),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})

	signedToken, err := token.SignedString([]byte(s.tokenSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	if err := s.sessions.Create(ctx, sessionID, session.Session{UserID: creds.ID}); err != nil {
		return "", err
	}

	return signedToken, nil
}

// Identity is what a verified token resolves to.
type Identity struct {
	UserID    int64
	SessionID string
}

func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (Identity, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.tokenSecret), nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	sess, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		return Identity{}, err
	}
	if sess == nil {
		// Logged out or expired server-side.
		return Identity{}, ErrInvalidToken
	}

	return Identity{UserID: userID, SessionID: claims.ID}, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}
