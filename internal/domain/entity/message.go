// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message is a direct message between two users. Messages currently live in an
// in-process placeholder store and are not durable.
type Message struct {
	ID         uuid.UUID `json:"id"`
	SenderID   uuid.UUID `json:"senderId"`
	ReceiverID uuid.UUID `json:"receiverId"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Involves reports whether the given user is the sender or receiver.
func (m *Message) Involves(userID uuid.UUID) bool {
	return m.SenderID == userID || m.ReceiverID == userID
}
