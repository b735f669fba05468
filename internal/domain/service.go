package domain

import (
	"context"

	"github.com/google/uuid"
)

// ActionType tells the transfer policy which market window applies
type ActionType string

// ActionClausulazo is a forced transfer by paying the release clause
const ActionClausulazo ActionType = "Clausulazo"

// CreateOfferInput carries a new bid. Cantidad is the amount checked against the budget and stored.
type CreateOfferInput struct {
	ActorID         uuid.UUID
	PlayerID        uuid.UUID
	Cantidad        int64
	EquipoOfertante string
	NombreOfertante string
	EscudoOfertante string
}

// CreatePlayerInput carries a new roster player for CreatorID.
// AcquiredPlayerID is the player being bought, whose pending offers do not count against the roster.
type CreatePlayerInput struct {
	ActorID          uuid.UUID
	CreatorID        uuid.UUID
	AcquiredPlayerID uuid.UUID
	Title            string
	Clausula         int64
	ClausulaInicial  int64
	Image            string
	Escudo           string
	Expires          int64
	Address          string
	PosIndex         int
	Team             string
	CreatorName      string
}

// CreateDiscardedPlayerInput carries a player released to the pool by OwnerDiscard
type CreateDiscardedPlayerInput struct {
	OwnerID            uuid.UUID
	Title              string
	Clausula           int64
	ClausulaInicial    int64
	Image              string
	Escudo             string
	Expires            int64
	Address            string
	PosIndex           int
	Team               string
	CreatorName        string
	DiscardExpiresDate *int64
}

// SignupInput carries a registration request
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// OfferService orchestrates bids
type OfferService interface {
	CreateOffer(ctx context.Context, input CreateOfferInput) (*Offer, error)
	UpdateOfferAmount(ctx context.Context, actorID, offerID uuid.UUID, cantidad int64) (*Offer, error)
	DeleteOffer(ctx context.Context, actorID, offerID uuid.UUID) error
	CheckOfferBudget(ctx context.Context, actorID uuid.UUID, cantidad int64, playerID uuid.UUID) error

	GetOffer(ctx context.Context, offerID uuid.UUID) (*Offer, error)
	ListOffersByPlayer(ctx context.Context, playerID uuid.UUID) ([]*Offer, error)
	ListMarketOffers(ctx context.Context) ([]*Offer, error)
	HasReceivedOffers(ctx context.Context, userID uuid.UUID) (bool, error)
}

// PlayerService orchestrates roster changes and transfers
type PlayerService interface {
	CreatePlayer(ctx context.Context, input CreatePlayerInput) (*Player, error)
	CreateDiscardedPlayer(ctx context.Context, input CreateDiscardedPlayerInput) (*Player, error)
	UpdatePlayerClause(ctx context.Context, actorID, playerID uuid.UUID, clausula int64) (*Player, error)
	UpdatePlayerTransferible(ctx context.Context, actorID, playerID uuid.UUID, transferible bool, marketValue int64) (*Player, error)
	DeletePlayer(ctx context.Context, actorID, playerID uuid.UUID, action ActionType) error
	DeleteDiscardedPlayer(ctx context.Context, actorID, playerID, acquirerID uuid.UUID, action ActionType) error

	GetPlayer(ctx context.Context, playerID uuid.UUID) (*Player, error)
	ListPlayersByUser(ctx context.Context, userID uuid.UUID) ([]*Player, error)
	ListMarketPlayers(ctx context.Context) ([]*Player, error)
	ListPlayersWithOffers(ctx context.Context) ([]*PlayerWithOffers, error)
	SweepExpiredDiscards(ctx context.Context) (int, error)
}

// UserService handles accounts and budgets
type UserService interface {
	Signup(ctx context.Context, input SignupInput) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	ListUsers(ctx context.Context) ([]*User, error)
	SetBudget(ctx context.Context, userID uuid.UUID, presupuesto int64) (*User, error)
}

// MessageService handles transfer announcements
type MessageService interface {
	PostMessage(ctx context.Context, text string) (*Message, error)
	ListMessages(ctx context.Context) ([]*Message, error)
}

// TokenIssuer signs bearer tokens for authenticated users
type TokenIssuer interface {
	Issue(userID uuid.UUID, email string) (string, error)
}
