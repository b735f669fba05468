package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/IsmaelSWO/league-backend/internal/domain"
)

const (
	msgMessagesFailed = "La obtención de mensajes falló, inténtelo de nuevo."
	msgMessageEmpty   = "El mensaje no puede estar vacío."
)

type messageService struct {
	uowFactory domain.UnitOfWorkFactory
	now        Clock
}

// NewMessageService creates a new message service
func NewMessageService(uowFactory domain.UnitOfWorkFactory, now Clock) domain.MessageService {
	if now == nil {
		now = systemClock
	}
	return &messageService{uowFactory: uowFactory, now: now}
}

// PostMessage appends a transfer announcement
func (s *messageService) PostMessage(ctx context.Context, text string) (*domain.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, validationError(msgMessageEmpty)
	}

	uow, err := begin(ctx, s.uowFactory)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback() // No-op if already committed

	message := &domain.Message{
		ID:              uuid.New(),
		TransferMessage: text,
		CreatedAt:       s.now().UTC().Truncate(time.Microsecond),
	}

	if err := uow.MessageRepository().Create(ctx, message); err != nil {
		return nil, persistenceError("post_message", msgMessagesFailed, err)
	}

	if err := commit("post_message", uow, msgMessagesFailed); err != nil {
		return nil, err
	}

	log.WithField("message_id", message.ID).Debug("Transfer message posted")
	return message, nil
}

// ListMessages returns every announcement, newest first
func (s *messageService) ListMessages(ctx context.Context) ([]*domain.Message, error) {
	uow, err := begin(ctx, s.uowFactory)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	messages, err := uow.MessageRepository().GetAll(ctx)
	if err != nil {
		return nil, persistenceError("list_messages", "La obtención de mensajes falló, inténtelo de nuevo", err)
	}
	return messages, nil
}
