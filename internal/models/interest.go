package models

import "time"

type InterestStatus string

const (
	InterestPending  InterestStatus = "pending"
	InterestAccepted InterestStatus = "accepted"
	InterestRejected InterestStatus = "rejected"
)

// Interest is a contact request from one user to another. It starts out
// pending; only the receiver may move it to accepted or rejected, and
// accepting it creates a Chat between the two users.
type Interest struct {
	ID         int64          `json:"id"`
	SenderID   int64          `json:"sender_id"`
	ReceiverID int64          `json:"receiver_id"`
	Status     InterestStatus `json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
}

type Chat struct {
	ID        int64     `json:"id"`
	User1ID   int64     `json:"user1_id"`
	User2ID   int64     `json:"user2_id"`
	CreatedAt time.Time `json:"created_at"`
}
