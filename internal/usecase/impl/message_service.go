package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	deliverycontext "spark/internal/delivery/context"
	"spark/internal/domain/entity"
	domainerrors "spark/internal/domain/errors"
	"spark/internal/domain/repository"
	"spark/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// messageService implements the MessageUsecase interface. Messages live in
// process memory only; durable chat storage comes with a later milestone.
type messageService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger

	mu       sync.RWMutex
	messages []*entity.Message
}

// MessageServiceParams holds dependencies for messageService, injected by Fx.
type MessageServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Logger   *slog.Logger
}

// NewMessageService is the constructor for messageService.
func NewMessageService(params MessageServiceParams) usecase.MessageUsecase {
	return &messageService{
		userRepo: params.UserRepo,
		logger:   params.Logger,
	}
}

func (srv *messageService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SendMessage stores a message from the sender to the receiver after checking
// that the receiver exists.
func (srv *messageService) SendMessage(ctx context.Context, input usecase.SendMessageInput) (*entity.Message, error) {
	if input.SenderID == input.ReceiverID {
		return nil, domainerrors.New(domainerrors.TypeBadRequest, "Cannot send a message to yourself.")
	}

	if _, err := srv.userRepo.FindByID(ctx, input.ReceiverID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.New(domainerrors.TypeNotFound, "User not found.")
		}

		return nil, errors.Wrap(err, "failed to find receiver by id")
	}

	now := time.Now()
	message := &entity.Message{
		ID:         uuid.New(),
		SenderID:   input.SenderID,
		ReceiverID: input.ReceiverID,
		Content:    input.Content,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	srv.mu.Lock()
	srv.messages = append(srv.messages, message)
	srv.mu.Unlock()

	srv.log(ctx).Info("Message sent",
		slog.String("sender_id", input.SenderID.String()),
		slog.String("receiver_id", input.ReceiverID.String()))

	return message, nil
}

// ListMessages returns every message sent or received by the user, oldest
// first. Insertion order is creation order, so no sort is needed.
func (srv *messageService) ListMessages(_ context.Context, userID uuid.UUID) ([]*entity.Message, error) {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	result := make([]*entity.Message, 0)
	for _, message := range srv.messages {
		if message.Involves(userID) {
			result = append(result, message)
		}
	}

	return result, nil
}
