package testutil

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/IsmaelSWO/league-backend/internal/domain"
)

// CreateTestUser creates a test user with default values
func CreateTestUser(name string) *domain.User {
	return &domain.User{
		ID:           uuid.New(),
		Name:         name,
		Equipo:       "Equipo " + name,
		Email:        fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8]),
		PasswordHash: "$2a$12$hash",
		Image:        "https://imgur.com/2FS8g0d.png",
		Division:     "Cuarta",
		Presupuesto:  6000,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

// CreateTestUserWithBudget creates a test user with a specific presupuesto
func CreateTestUserWithBudget(name string, presupuesto int64) *domain.User {
	user := CreateTestUser(name)
	user.Presupuesto = presupuesto
	return user
}

// CreateTestPlayer creates a player owned by creator; a nil creator makes it unowned
func CreateTestPlayer(title string, clausula int64, creator *domain.User) *domain.Player {
	player := &domain.Player{
		ID:              uuid.New(),
		Title:           title,
		Clausula:        clausula,
		ClausulaInicial: clausula,
		Image:           "https://example.com/" + title + ".png",
		Escudo:          "https://example.com/escudo.png",
		Expires:         time.Now().Add(24 * time.Hour).UnixMilli(),
		Address:         "Calle Falsa 123",
		PosIndex:        1,
		Team:            "Real Betis",
		CreatedAt:       time.Now().UTC().Truncate(time.Microsecond),
	}
	if creator != nil {
		id := creator.ID
		player.CreatorID = &id
		player.CreatorName = creator.Name
	}
	return player
}

// CreateTestDiscardedPlayer creates an unowned player released by owner, expiring at expiresAt
func CreateTestDiscardedPlayer(title string, owner *domain.User, expiresAt time.Time) *domain.Player {
	player := CreateTestPlayer(title, 1000, nil)
	ownerID := owner.ID
	expires := expiresAt.UnixMilli()
	player.OwnerDiscard = &ownerID
	player.DiscardExpiresDate = &expires
	player.Team = domain.TeamWithoutClub
	return player
}

// CreateTestOffer creates an offer by bidder on player
func CreateTestOffer(bidder *domain.User, player *domain.Player, cantidad int64) *domain.Offer {
	return &domain.Offer{
		ID:              uuid.New(),
		Cantidad:        cantidad,
		OfertanteID:     bidder.ID,
		PlayerID:        player.ID,
		EquipoOfertante: bidder.Equipo,
		NombreOfertante: bidder.Name,
		EscudoOfertante: bidder.Image,
		CreatedAt:       time.Now().UTC().Truncate(time.Microsecond),
	}
}
