package interest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zentra/zentrachat/internal/models"
	"github.com/zentra/zentrachat/internal/repository/interest"
	"github.com/zentra/zentrachat/internal/repository/user"
)

type fakeInterestRepo struct {
	interests map[int64]*models.Interest
	nextID    int64
}

func newFakeInterestRepo() *fakeInterestRepo {
	return &fakeInterestRepo{interests: map[int64]*models.Interest{}, nextID: 1}
}

func (r *fakeInterestRepo) Create(_ context.Context, senderID, receiverID int64) (models.Interest, error) {
	for _, existing := range r.interests {
		if existing.SenderID == senderID && existing.ReceiverID == receiverID {
			return models.Interest{}, interest.ErrDuplicate
		}
	}
	created := models.Interest{
		ID:         r.nextID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     models.InterestPending,
		CreatedAt:  time.Now(),
	}
	r.nextID++
	r.interests[created.ID] = &created
	return created, nil
}

func (r *fakeInterestRepo) GetByID(_ context.Context, id int64) (*models.Interest, error) {
	found, ok := r.interests[id]
	if !ok {
		return nil, interest.ErrNotFound
	}
	copied := *found
	return &copied, nil
}

func (r *fakeInterestRepo) UpdateStatus(_ context.Context, id int64, status models.InterestStatus) error {
	found, ok := r.interests[id]
	if !ok {
		return interest.ErrNotFound
	}
	found.Status = status
	return nil
}

func (r *fakeInterestRepo) ListForUser(_ context.Context, userID int64) ([]models.Interest, error) {
	var out []models.Interest
	for _, found := range r.interests {
		if found.SenderID == userID || found.ReceiverID == userID {
			out = append(out, *found)
		}
	}
	return out, nil
}

type fakeChatRepo struct {
	chats  []models.Chat
	nextID int64
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{nextID: 1}
}

func (r *fakeChatRepo) Create(_ context.Context, user1ID, user2ID int64) (models.Chat, error) {
	chat := models.Chat{ID: r.nextID, User1ID: user1ID, User2ID: user2ID, CreatedAt: time.Now()}
	r.nextID++
	r.chats = append(r.chats, chat)
	return chat, nil
}

func (r *fakeChatRepo) Exists(_ context.Context, user1ID, user2ID int64) (bool, error) {
	for _, chat := range r.chats {
		if (chat.User1ID == user1ID && chat.User2ID == user2ID) ||
			(chat.User1ID == user2ID && chat.User2ID == user1ID) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeChatRepo) ListForUser(_ context.Context, userID int64) ([]models.Chat, error) {
	var out []models.Chat
	for _, chat := range r.chats {
		if chat.User1ID == userID || chat.User2ID == userID {
			out = append(out, chat)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	ids map[int64]bool
}

func (r *fakeUserRepo) Create(_ context.Context, _, _ string, _ []byte) (int64, error) {
	return 0, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, _ string) (*user.Credentials, error) {
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	if !r.ids[id] {
		return nil, user.ErrUserNotFound
	}
	return &models.User{ID: id}, nil
}

func (r *fakeUserRepo) ListExcept(_ context.Context, _ int64) ([]models.User, error) {
	return nil, nil
}

func newTestService(userIDs ...int64) (*InterestService, *fakeChatRepo) {
	ids := map[int64]bool{}
	for _, id := range userIDs {
		ids[id] = true
	}
	chats := newFakeChatRepo()
	service := NewInterestService(newFakeInterestRepo(), chats, &fakeUserRepo{ids: ids})
	return service, chats
}

func TestSend_CreatesPendingInterest(t *testing.T) {
	req := require.New(t)
	service, _ := newTestService(1, 2)

	created, err := service.Send(context.Background(), 1, 2)
	req.NoError(err)
	req.Equal(models.InterestPending, created.Status)
	req.Equal(int64(1), created.SenderID)
	req.Equal(int64(2), created.ReceiverID)
}

func TestSend_RejectsSelfAndUnknownReceiver(t *testing.T) {
	req := require.New(t)
	service, _ := newTestService(1, 2)

	_, err := service.Send(context.Background(), 1, 1)
	req.ErrorIs(err, ErrSelfInterest)

	_, err = service.Send(context.Background(), 1, 99)
	req.ErrorIs(err, ErrReceiverNotFound)
}

func TestSend_RejectsDuplicates(t *testing.T) {
	req := require.New(t)
	service, _ := newTestService(1, 2)

	_, err := service.Send(context.Background(), 1, 2)
	req.NoError(err)

	_, err = service.Send(context.Background(), 1, 2)
	req.ErrorIs(err, ErrAlreadySent)
}

func TestAccept_OpensChatBetweenUsers(t *testing.T) {
	req := require.New(t)
	service, chats := newTestService(1, 2)

	created, err := service.Send(context.Background(), 1, 2)
	req.NoError(err)

	answered, err := service.Accept(context.Background(), created.ID, 2)
	req.NoError(err)
	req.Equal(models.InterestAccepted, answered.Status)

	exists, err := chats.Exists(context.Background(), 1, 2)
	req.NoError(err)
	req.True(exists)
	req.Len(chats.chats, 1)
}

func TestAccept_OnlyReceiverAndOnlyOnce(t *testing.T) {
	req := require.New(t)
	service, chats := newTestService(1, 2)

	created, err := service.Send(context.Background(), 1, 2)
	req.NoError(err)

	// The sender cannot answer their own interest.
	_, err = service.Accept(context.Background(), created.ID, 1)
	req.ErrorIs(err, ErrNotReceiver)

	_, err = service.Accept(context.Background(), created.ID, 2)
	req.NoError(err)

	_, err = service.Accept(context.Background(), created.ID, 2)
	req.ErrorIs(err, ErrNotPending)
	req.Len(chats.chats, 1)
}

func TestReject_DoesNotOpenChat(t *testing.T) {
	req := require.New(t)
	service, chats := newTestService(1, 2)

	created, err := service.Send(context.Background(), 1, 2)
	req.NoError(err)

	answered, err := service.Reject(context.Background(), created.ID, 2)
	req.NoError(err)
	req.Equal(models.InterestRejected, answered.Status)
	req.Empty(chats.chats)
}

func TestAnswer_UnknownInterest(t *testing.T) {
	req := require.New(t)
	service, _ := newTestService(1, 2)

	_, err := service.Accept(context.Background(), 42, 2)
	req.ErrorIs(err, ErrNotFound)
}
