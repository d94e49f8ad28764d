package interest

import (
	"context"
	"errors"

	"github.com/zentra/zentrachat/internal/models"
	"github.com/zentra/zentrachat/internal/repository/chat"
	"github.com/zentra/zentrachat/internal/repository/interest"
	"github.com/zentra/zentrachat/internal/repository/user"
)

var (
	ErrSelfInterest     = errors.New("cannot send an interest to yourself")
	ErrAlreadySent      = errors.New("interest already sent")
	ErrNotFound         = errors.New("interest not found")
	ErrNotReceiver      = errors.New("only the receiver can answer an interest")
	ErrNotPending       = errors.New("interest is not pending")
	ErrReceiverNotFound = errors.New("receiver not found")
)

type InterestService struct {
	interestRepo interest.InterestRepository
	chatRepo     chat.ChatRepository
	userRepo     user.UserRepository
}

func NewInterestService(
	interestRepo interest.InterestRepository,
	chatRepo chat.ChatRepository,
	userRepo user.UserRepository,
) *InterestService {
	return &InterestService{
		interestRepo: interestRepo,
		chatRepo:     chatRepo,
		userRepo:     userRepo,
	}
}

func (s *InterestService) Send(ctx context.Context, senderID, receiverID int64) (models.Interest, error) {
	if senderID == receiverID {
		return models.Interest{}, ErrSelfInterest
	}

	if _, err := s.userRepo.GetByID(ctx, receiverID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return models.Interest{}, ErrReceiverNotFound
		}
		return models.Interest{}, err
	}

	created, err := s.interestRepo.Create(ctx, senderID, receiverID)
	if err != nil {
		if errors.Is(err, interest.ErrDuplicate) {
			return models.Interest{}, ErrAlreadySent
		}
		return models.Interest{}, err
	}

	return created, nil
}

// Accept moves a pending interest to accepted and opens a chat between
// the two users. Only the receiver may accept, and only once.
func (s *InterestService) Accept(ctx context.Context, interestID, userID int64) (*models.Interest, error) {
	found, err := s.answer(ctx, interestID, userID, models.InterestAccepted)
	if err != nil {
		return nil, err
	}

	exists, err := s.chatRepo.Exists(ctx, found.SenderID, found.ReceiverID)
	if err != nil {
		return nil, err
	}
	if !exists {
		if _, err := s.chatRepo.Create(ctx, found.SenderID, found.ReceiverID); err != nil {
			return nil, err
		}
	}

	return found, nil
}

func (s *InterestService) Reject(ctx context.Context, interestID, userID int64) (*models.Interest, error) {
	return s.answer(ctx, interestID, userID, models.InterestRejected)
}

func (s *InterestService) answer(ctx context.Context, interestID, userID int64, status models.InterestStatus) (*models.Interest, error) {
	found, err := s.interestRepo.GetByID(ctx, interestID)
	if err != nil {
		if errors.Is(err, interest.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if found.ReceiverID != userID {
		return nil, ErrNotReceiver
	}
	if found.Status != models.InterestPending {
		return nil, ErrNotPending
	}

	if err := s.interestRepo.UpdateStatus(ctx, interestID, status); err != nil {
		return nil, err
	}

	found.Status = status
	return found, nil
}

func (s *InterestService) ListForUser(ctx context.Context, userID int64) ([]models.Interest, error) {
	return s.interestRepo.ListForUser(ctx, userID)
}
