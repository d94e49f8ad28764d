package models

import "time"

// Message is a single chat entry. Messages are immutable once created:
// there is no update or delete path anywhere in the service.
type Message struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
