package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "spark/internal/delivery/context"
	domainerrors "spark/internal/domain/errors"
	"spark/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type sendMessageRequest struct {
	ReceiverID uuid.UUID `json:"receiverId" validate:"required"`
	Content    string    `json:"content" validate:"required,max=2000"`
}

// MessageHandler holds dependencies for the direct-messaging handlers.
type MessageHandler struct {
	uc     usecase.MessageUsecase
	logger *slog.Logger
}

// NewMessageHandler is the constructor for MessageHandler, injected by Fx.
func NewMessageHandler(uc usecase.MessageUsecase, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{
		uc:     uc,
		logger: logger,
	}
}

// SendMessage sends a direct message from the authenticated user.
func (h *MessageHandler) SendMessage(c echo.Context) error {
	session := deliverycontext.GetSession(c)
	if session == nil {
		return domainerrors.New(domainerrors.TypeUnauthorized, "`Authorization` header is required.")
	}

	input, err := bindAndValidate[sendMessageRequest](c)
	if err != nil {
		return err
	}

	message, err := h.uc.SendMessage(c.Request().Context(), usecase.SendMessageInput{
		SenderID:   session.UserID,
		ReceiverID: input.ReceiverID,
		Content:    input.Content,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusCreated, message)
}

// ListMessages lists the authenticated user's messages, oldest first.
func (h *MessageHandler) ListMessages(c echo.Context) error {
	session := deliverycontext.GetSession(c)
	if session == nil {
		return domainerrors.New(domainerrors.TypeUnauthorized, "`Authorization` header is required.")
	}

	messages, err := h.uc.ListMessages(c.Request().Context(), session.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, messages)
}
