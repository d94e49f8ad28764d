package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/zentra/zentrachat/internal/models"
	"github.com/zentra/zentrachat/internal/repository/session"
	"github.com/zentra/zentrachat/internal/repository/user"
)

type fakeUserRepo struct {
	users  map[string]*user.Credentials
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*user.Credentials{}, nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, email, _ string, passHash []byte) (int64, error) {
	if _, ok := r.users[email]; ok {
		return 0, user.ErrDuplicate
	}
	id := r.nextID
	r.nextID++
	r.users[email] = &user.Credentials{ID: id, PasswordHash: passHash}
	return id, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*user.Credentials, error) {
	creds, ok := r.users[email]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return creds, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, _ int64) (*models.User, error) {
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepo) ListExcept(_ context.Context, _ int64) ([]models.User, error) {
	return nil, nil
}

type fakeSessionStore struct {
	sessions map[string]session.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]session.Session{}}
}

func (s *fakeSessionStore) Create(_ context.Context, sessionID string, sess session.Session) error {
	s.sessions[sessionID] = sess
	return nil
}

func (s *fakeSessionStore) Get(_ context.Context, sessionID string) (*session.Session, error) {
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return &sess, nil
}

func (s *fakeSessionStore) Delete(_ context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

func newTestService() (*AuthService, *fakeSessionStore) {
	sessions := newFakeSessionStore()
	return NewAuthService(newFakeUserRepo(), sessions, "test-secret", time.Hour), sessions
}

func TestRegister_HashesPassword(t *testing.T) {
	req := require.New(t)
	service, _ := newTestService()

	userID, err := service.Register(context.Background(), "alice@example.com", "alice", "password123")
	req.NoError(err)
	req.Equal(int64(1), userID)

	creds, err := service.userRepo.GetByEmail(context.Background(), "alice@example.com")
	req.NoError(err)
	req.NotEqual([]byte("password123"), creds.PasswordHash)
	req.NoError(bcrypt.CompareHashAndPassword(creds.PasswordHash, []byte("password123")))
}

func TestRegister_RejectsBadInput(t *testing.T) {
	req := require.New(t)
	service, _ := newTestService()

	_, err := service.Register(context.Background(), "", "alice", "password123")
	req.ErrorIs(err, ErrEmailRequired)

	_, err = service.Register(context.Background(), "alice@example.com", "", "password123")
	req.ErrorIs(err, ErrUsernameRequired)

	_, err = service.Register(context.Background(), "alice@example.com", "alice", "")
	req.ErrorIs(err, ErrPasswordRequired)

	_, err = service.Register(context.Background(), "alice@example.com", "alice", "short")
	req.ErrorIs(err, ErrPasswordTooShort)
}

func TestRegister_RejectsDuplicates(t *testing.T) {
	req := require.New(t)
	service, _ := newTestService()

	_, err := service.Register(context.Background(), "alice@example.com", "alice", "password123")
	req.NoError(err)

	_, err = service.Register(context.Background(), "alice@example.com", "alice2", "password123")
	req.ErrorIs(err, ErrUserAlreadyExists)
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	req := require.New(t)
	service, sessions := newTestService()

	userID, err := service.Register(context.Background(), "alice@example.com", "alice", "password123")
	req.NoError(err)

	token, err := service.Login(context.Background(), "alice@example.com", "password123")
	req.NoError(err)
	req.NotEmpty(token)
	req.Len(sessions.sessions, 1)

	identity, err := service.ValidateToken(context.Background(), token)
	req.NoError(err)
	req.Equal(userID, identity.UserID)
}

func TestLogin_RejectsWrongPassword(t *testing.T) {
	req := require.New(t)
	service, _ := newTestService()

	_, err := service.Register(context.Background(), "alice@example.com", "alice", "password123")
	req.NoError(err)

	_, err = service.Login(context.Background(), "alice@example.com", "wrong-password")
	req.ErrorIs(err, ErrInvalidCredentials)

	_, err = service.Login(context.Background(), "nobody@example.com", "password123")
	req.ErrorIs(err, ErrInvalidCredentials)
}

func TestLogout_RevokesToken(t *testing.T) {
	req := require.New(t)
	service, _ := newTestService()

	_, err := service.Register(context.Background(), "alice@example.com", "alice", "password123")
	req.NoError(err)

	token, err := service.Login(context.Background(), "alice@example.com", "password123")
	req.NoError(err)

	identity, err := service.ValidateToken(context.Background(), token)
	req.NoError(err)

	req.NoError(service.Logout(context.Background(), identity.SessionID))

	// Token signature is still valid, but the session is gone.
	_, err = service.ValidateToken(context.Background(), token)
	req.ErrorIs(err, ErrInvalidToken)
}

func TestValidateToken_RejectsGarbage(t *testing.T) {
	req := require.New(t)
	service, _ := newTestService()

	_, err := service.ValidateToken(context.Background(), "not-a-token")
	req.ErrorIs(err, ErrInvalidToken)
}
