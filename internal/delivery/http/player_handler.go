package http

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/IsmaelSWO/league-backend/internal/delivery/http/dto"
	"github.com/IsmaelSWO/league-backend/internal/domain"
	"github.com/IsmaelSWO/league-backend/internal/middleware"
	"github.com/IsmaelSWO/league-backend/internal/utils"
)

const msgPlayerIDNotFound = "No se ha encontrado a un jugador con ese id."

// PlayerHandler handles roster, market and transfer requests
type PlayerHandler struct {
	players    domain.PlayerService
	discardTTL time.Duration
	now        func() time.Time
}

// NewPlayerHandler creates a new PlayerHandler. Discarded players created
// without an expiry get one discardTTL from now.
func NewPlayerHandler(players domain.PlayerService, discardTTL time.Duration, now func() time.Time) *PlayerHandler {
	if now == nil {
		now = time.Now
	}
	return &PlayerHandler{
		players:    players,
		discardTTL: discardTTL,
		now:        now,
	}
}

// GetPlayer returns a single player
// GET /api/players/get/:pid
func (h *PlayerHandler) GetPlayer(c echo.Context) error {
	playerID, err := uuidParam(c, "pid", msgPlayerIDNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	player, err := h.players.GetPlayer(ctx, playerID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.PlayerResponse{Player: player})
}

// ListPlayersByUser returns a manager's roster
// GET /api/players/user/:uid
func (h *PlayerHandler) ListPlayersByUser(c echo.Context) error {
	userID, err := uuidParam(c, "uid", "No se ha encontrado a un usuario con ese id.")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	players, err := h.players.ListPlayersByUser(ctx, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.PlayersResponse{Players: players})
}

// ListMarketPlayers returns the players on sale and the club-less pool
// GET /api/players/mercado
func (h *PlayerHandler) ListMarketPlayers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	players, err := h.players.ListMarketPlayers(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.PlayersResponse{Players: players})
}

// ListPlayersWithOffers returns every player with its offers
// GET /api/players/top/ofertasrealizadas
func (h *PlayerHandler) ListPlayersWithOffers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	players, err := h.players.ListPlayersWithOffers(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.PlayersWithOffersResponse{Players: players})
}

// CreatePlayer adds a player to the creator's roster. :pid is the player being
// acquired, whose pending offers do not count against the roster.
// POST /api/players/:pid
func (h *PlayerHandler) CreatePlayer(c echo.Context) error {
	actorID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	// a malformed :pid only means no offer is excluded
	acquiredID, _ := uuid.Parse(c.Param("pid"))

	var req dto.CreatePlayerRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	creatorID := actorID
	if req.Creator != "" {
		creatorID, err = uuid.Parse(req.Creator)
		if err != nil {
			return domain.NewError(domain.CodeNotFound, "No se encontró un usuario con ese id")
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	player, err := h.players.CreatePlayer(ctx, domain.CreatePlayerInput{
		ActorID:          actorID,
		CreatorID:        creatorID,
		AcquiredPlayerID: acquiredID,
		Title:            req.Title,
		Clausula:         req.Clausula,
		ClausulaInicial:  req.ClausulaInicial,
		Image:            req.Image,
		Escudo:           req.Escudo,
		Expires:          req.Expires,
		Address:          req.Address,
		PosIndex:         req.PosIndex,
		Team:             req.Team,
		CreatorName:      req.CreatorName,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.PlayerResponse{Player: player})
}

// CreateDiscardedPlayer releases a player to the discard pool
// POST /api/players/discarded/:uid
func (h *PlayerHandler) CreateDiscardedPlayer(c echo.Context) error {
	if _, err := middleware.GetUserID(c); err != nil {
		return err
	}

	ownerID, err := uuidParam(c, "uid", "No se pudo encontrar al usuario con ese id.")
	if err != nil {
		return err
	}

	var req dto.CreateDiscardedPlayerRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	expires := req.DiscardExpiresDate
	if expires == nil && h.discardTTL > 0 {
		at := utils.UnixMillisAfter(h.now(), h.discardTTL)
		expires = &at
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	player, err := h.players.CreateDiscardedPlayer(ctx, domain.CreateDiscardedPlayerInput{
		OwnerID:            ownerID,
		Title:              req.Title,
		Clausula:           req.Clausula,
		ClausulaInicial:    req.ClausulaInicial,
		Image:              req.Image,
		Escudo:             req.Escudo,
		Expires:            req.Expires,
		Address:            req.Address,
		PosIndex:           req.PosIndex,
		Team:               req.Team,
		CreatorName:        req.CreatorName,
		DiscardExpiresDate: expires,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.PlayerResponse{Player: player})
}

// UpdatePlayerTransferible lists or unlists a player
// PATCH /api/players/transferible/:pid
func (h *PlayerHandler) UpdatePlayerTransferible(c echo.Context) error {
	actorID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	playerID, err := uuidParam(c, "pid", msgPlayerIDNotFound)
	if err != nil {
		return err
	}

	var req dto.UpdateTransferibleRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if req.Transferible == nil {
		return invalidInput(msgInvalidPayload)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	player, err := h.players.UpdatePlayerTransferible(ctx, actorID, playerID, *req.Transferible, req.MarketValue)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.PlayerResponse{Player: player})
}

// UpdatePlayerClause raises a player's release clause
// PATCH /api/players/:pid
func (h *PlayerHandler) UpdatePlayerClause(c echo.Context) error {
	actorID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	playerID, err := uuidParam(c, "pid", msgPlayerIDNotFound)
	if err != nil {
		return err
	}

	var req dto.UpdateClauseRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if req.Clausula == nil {
		return invalidInput(msgInvalidPayload)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	player, err := h.players.UpdatePlayerClause(ctx, actorID, playerID, *req.Clausula)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.PlayerResponse{Player: player})
}

// DeletePlayer removes a player from its owner, as a transfer or a clause buyout
// DELETE /api/players/:pid
func (h *PlayerHandler) DeletePlayer(c echo.Context) error {
	actorID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	playerID, err := uuidParam(c, "pid", "No se ha encontrado el jugador con ese id")
	if err != nil {
		return err
	}

	var req dto.DeletePlayerRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	if err := h.players.DeletePlayer(ctx, actorID, playerID, domain.ActionType(req.ActionType)); err != nil {
		return err
	}

	return MessageOK(c, msgPlayerDeleted)
}

// DeleteDiscardedPlayer lets :uid claim a player from the discard pool
// DELETE /api/players/delete/:pid/:uid
func (h *PlayerHandler) DeleteDiscardedPlayer(c echo.Context) error {
	actorID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	playerID, err := uuidParam(c, "pid", "No se encontró un jugador para ese id.")
	if err != nil {
		return err
	}
	acquirerID, err := uuidParam(c, "uid", "No se encontró un usuario para ese id.")
	if err != nil {
		return err
	}

	var req dto.DeletePlayerRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	if err := h.players.DeleteDiscardedPlayer(ctx, actorID, playerID, acquirerID, domain.ActionType(req.ActionType)); err != nil {
		return err
	}

	return MessageOK(c, msgPlayerDeleted)
}
