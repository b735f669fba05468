package domain

import (
	"context"

	"github.com/google/uuid"
)

// Repositories return (nil, nil) when a row does not exist; errors are reserved for store failures.

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID, with the roster populated in order
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetAll retrieves all users
	GetAll(ctx context.Context) ([]*User, error)

	// UpdateBudget sets the user's presupuesto
	UpdateBudget(ctx context.Context, userID uuid.UUID, presupuesto int64) error

	// AddPlayer appends a player to the end of the user's roster
	AddPlayer(ctx context.Context, userID, playerID uuid.UUID) error

	// RemovePlayer removes a player from the user's roster
	RemovePlayer(ctx context.Context, userID, playerID uuid.UUID) error
}

// PlayerRepository defines the interface for player data operations
type PlayerRepository interface {
	// Create inserts a new player
	Create(ctx context.Context, player *Player) error

	// GetByID retrieves a player by ID, with its offer list populated in order
	GetByID(ctx context.Context, id uuid.UUID) (*Player, error)

	// GetByCreator retrieves the players in a user's roster, in roster order
	GetByCreator(ctx context.Context, userID uuid.UUID) ([]*Player, error)

	// GetMarket retrieves transferible or club-less players, highest clause first
	GetMarket(ctx context.Context) ([]*Player, error)

	// GetAll retrieves every player, highest clause first
	GetAll(ctx context.Context) ([]*Player, error)

	// GetExpiredDiscards retrieves unowned discarded players whose reclaim window ended before nowMillis
	GetExpiredDiscards(ctx context.Context, nowMillis int64) ([]*Player, error)

	// UpdateClause sets the player's clausula
	UpdateClause(ctx context.Context, playerID uuid.UUID, clausula int64) error

	// UpdateTransferible sets the player's listing flag and market value
	UpdateTransferible(ctx context.Context, playerID uuid.UUID, transferible bool, marketValue int64) error

	// AddOffer appends an offer to the end of the player's offer list
	AddOffer(ctx context.Context, playerID, offerID uuid.UUID) error

	// RemoveOffer removes an offer from the player's offer list
	RemoveOffer(ctx context.Context, playerID, offerID uuid.UUID) error

	// ClearOffers removes every entry from the player's offer list
	ClearOffers(ctx context.Context, playerID uuid.UUID) error

	// Delete removes the player row
	Delete(ctx context.Context, playerID uuid.UUID) error
}

// OfferRepository defines the interface for offer data operations
type OfferRepository interface {
	// Create inserts a new offer
	Create(ctx context.Context, offer *Offer) error

	// GetByID retrieves an offer by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Offer, error)

	// GetByBidder retrieves every open offer placed by a user
	GetByBidder(ctx context.Context, bidderID uuid.UUID) ([]*Offer, error)

	// GetByPlayer retrieves the offers on a player, in the player's offer-list order
	GetByPlayer(ctx context.Context, playerID uuid.UUID) ([]*Offer, error)

	// GetOnTransferiblePlayers retrieves offers whose target player is listed for sale
	GetOnTransferiblePlayers(ctx context.Context) ([]*Offer, error)

	// CountReceivedByOwner counts offers on players in a user's roster, also matching
	// players whose creatorName equals ownerName when ownerName is not empty
	CountReceivedByOwner(ctx context.Context, ownerID uuid.UUID, ownerName string) (int, error)

	// UpdateAmount sets the offer's cantidad
	UpdateAmount(ctx context.Context, offerID uuid.UUID, cantidad int64) error

	// Delete removes an offer
	Delete(ctx context.Context, offerID uuid.UUID) error

	// DeleteByPlayer removes every offer targeting a player and returns how many were removed
	DeleteByPlayer(ctx context.Context, playerID uuid.UUID) (int64, error)
}

// MessageRepository defines the interface for transfer announcements
type MessageRepository interface {
	// Create appends a new message
	Create(ctx context.Context, message *Message) error

	// GetAll retrieves every message, newest first
	GetAll(ctx context.Context) ([]*Message, error)
}

// UnitOfWork scopes a set of repositories to one database transaction.
// Repositories are only available between Begin and Commit/Rollback.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() UserRepository
	PlayerRepository() PlayerRepository
	OfferRepository() OfferRepository
	MessageRepository() MessageRepository
}

// UnitOfWorkFactory creates fresh units of work
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
