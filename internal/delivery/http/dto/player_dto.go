package dto

import "github.com/IsmaelSWO/league-backend/internal/domain"

// CreatePlayerRequest is the body of POST /players/:pid
type CreatePlayerRequest struct {
	Title           string `json:"title"`
	Clausula        int64  `json:"clausula"`
	ClausulaInicial int64  `json:"clausulaInicial"`
	Address         string `json:"address"`
	PosIndex        int    `json:"posIndex"`
	Image           string `json:"image"`
	Escudo          string `json:"escudo"`
	Expires         int64  `json:"Expires"`
	Team            string `json:"team"`
	Creator         string `json:"creator"`
	CreatorName     string `json:"creatorName"`
}

// CreateDiscardedPlayerRequest is the body of POST /players/discarded/:uid
type CreateDiscardedPlayerRequest struct {
	Title              string `json:"title"`
	Clausula           int64  `json:"clausula"`
	ClausulaInicial    int64  `json:"clausulaInicial"`
	Address            string `json:"address"`
	PosIndex           int    `json:"posIndex"`
	Image              string `json:"image"`
	Escudo             string `json:"escudo"`
	Expires            int64  `json:"Expires"`
	Team               string `json:"team"`
	CreatorName        string `json:"creatorName"`
	DiscardExpiresDate *int64 `json:"discardExpiresDate"`
}

// UpdateClauseRequest is the body of PATCH /players/:pid
type UpdateClauseRequest struct {
	Clausula *int64 `json:"clausula"`
}

// UpdateTransferibleRequest is the body of PATCH /players/transferible/:pid
type UpdateTransferibleRequest struct {
	Transferible *bool `json:"transferible"`
	MarketValue  int64 `json:"marketValue"`
}

// DeletePlayerRequest is the body of the player removal routes
type DeletePlayerRequest struct {
	ActionType string `json:"actionType"`
}

// PlayerResponse wraps a single player
type PlayerResponse struct {
	Player *domain.Player `json:"player"`
}

// PlayersResponse wraps a list of players
type PlayersResponse struct {
	Players []*domain.Player `json:"players"`
}

// PlayersWithOffersResponse wraps players with their offers expanded
type PlayersWithOffersResponse struct {
	Players []*domain.PlayerWithOffers `json:"players"`
}
