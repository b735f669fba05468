package domain

import (
	"time"

	"github.com/google/uuid"
)

// Player represents a footballer card owned by a user, or a discarded one waiting in the pool
type Player struct {
	ID                 uuid.UUID   `json:"id"`
	Title              string      `json:"title"`
	Clausula           int64       `json:"clausula"`
	ClausulaInicial    int64       `json:"clausulaInicial"`
	MarketValue        int64       `json:"marketValue"`
	Transferible       bool        `json:"transferible"`
	Image              string      `json:"image"`
	Escudo             string      `json:"escudo"`
	Expires            int64       `json:"Expires"`
	Address            string      `json:"address"`
	PosIndex           int         `json:"posIndex"`
	Team               string      `json:"team"`
	CreatorName        string      `json:"creatorName"`
	CreatorID          *uuid.UUID  `json:"creator,omitempty"`
	OwnerDiscard       *uuid.UUID  `json:"ownerDiscard,omitempty"`
	DiscardExpiresDate *int64      `json:"discardExpiresDate,omitempty"` // unix millis
	Ofertas            []uuid.UUID `json:"ofertas"`
	CreatedAt          time.Time   `json:"createdAt"`
}

// TeamWithoutClub is the team label of players sitting in the free pool
const TeamWithoutClub = "Sin equipo"

// IsOwnedBy reports whether the player belongs to the given user
func (p *Player) IsOwnedBy(userID uuid.UUID) bool {
	return p.CreatorID != nil && *p.CreatorID == userID
}

// IsDiscarded reports whether the player was released to the unowned pool
func (p *Player) IsDiscarded() bool {
	return p.CreatorID == nil && p.OwnerDiscard != nil
}

// DiscardExpired reports whether a discarded player's reclaim window has passed
func (p *Player) DiscardExpired(now time.Time) bool {
	if !p.IsDiscarded() || p.DiscardExpiresDate == nil {
		return false
	}
	return *p.DiscardExpiresDate <= now.UnixMilli()
}

// PlayerWithOffers is a player with its offer list populated
type PlayerWithOffers struct {
	Player
	Ofertas []*Offer `json:"ofertas"`
}
