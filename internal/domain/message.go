package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is a free-text transfer announcement
type Message struct {
	ID              uuid.UUID `json:"id"`
	TransferMessage string    `json:"TransferMessage"`
	CreatedAt       time.Time `json:"createdAt"`
}
