package usecase

import (
	"context"

	"spark/internal/domain/entity"

	"github.com/google/uuid"
)

// SendMessageInput defines a direct message from one user to another.
type SendMessageInput struct {
	SenderID   uuid.UUID
	ReceiverID uuid.UUID
	Content    string
}

// MessageUsecase defines the interface for direct-messaging operations.
type MessageUsecase interface {
	// SendMessage stores a message from the sender to the receiver.
	SendMessage(ctx context.Context, input SendMessageInput) (*entity.Message, error)

	// ListMessages returns every message sent or received by the user,
	// oldest first.
	ListMessages(ctx context.Context, userID uuid.UUID) ([]*entity.Message, error)
}
