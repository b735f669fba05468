package domain

import (
	"time"

	"github.com/google/uuid"
)

// Offer represents a bid by one user on another user's player.
// The bidder's team, name and crest are copied at creation time.
type Offer struct {
	ID              uuid.UUID `json:"id"`
	Cantidad        int64     `json:"cantidad"`
	OfertanteID     uuid.UUID `json:"ofertanteId"`
	PlayerID        uuid.UUID `json:"playerId"`
	EquipoOfertante string    `json:"equipoOfertante"`
	NombreOfertante string    `json:"nombreOfertante"`
	EscudoOfertante string    `json:"escudoOfertante"`
	CreatedAt       time.Time `json:"createdAt"`
}
