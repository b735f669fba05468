package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a manager in the league
type User struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	Equipo       string      `json:"equipo"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"` // Never expose password hash in JSON
	Image        string      `json:"image"`
	Division     string      `json:"division"`
	Presupuesto  int64       `json:"presupuesto"`
	Players      []uuid.UUID `json:"players"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// RosterSize returns the number of players currently owned by the user
func (u *User) RosterSize() int {
	return len(u.Players)
}

// Session is what signup and login hand back to the client
type Session struct {
	UserID      uuid.UUID `json:"userId"`
	Email       string    `json:"email"`
	Token       string    `json:"token"`
	Presupuesto int64     `json:"presupuesto"`
	Name        string    `json:"name"`
	Equipo      string    `json:"equipo"`
	Image       string    `json:"image"`
	HasOffers   bool      `json:"hasOffers"`
}
