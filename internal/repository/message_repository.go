package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/IsmaelSWO/league-backend/internal/domain"
)

// MessageRepositoryImpl implements the MessageRepository interface
type MessageRepositoryImpl struct {
	q queryable
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *pgxpool.Pool) domain.MessageRepository {
	return &MessageRepositoryImpl{q: db}
}

func newMessageRepositoryWithTx(tx queryable) *MessageRepositoryImpl {
	return &MessageRepositoryImpl{q: tx}
}

// Create appends a message
func (r *MessageRepositoryImpl) Create(ctx context.Context, message *domain.Message) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO messages (id, transfer_message, created_at) VALUES ($1, $2, $3)`,
		message.ID, message.TransferMessage, message.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// GetAll retrieves every message, newest first
func (r *MessageRepositoryImpl) GetAll(ctx context.Context) ([]*domain.Message, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, transfer_message, created_at
		FROM messages
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	messages := make([]*domain.Message, 0)
	for rows.Next() {
		m := &domain.Message{}
		if err := rows.Scan(&m.ID, &m.TransferMessage, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}

	return messages, nil
}
