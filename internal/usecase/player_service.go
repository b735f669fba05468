package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/IsmaelSWO/league-backend/internal/domain"
	"github.com/IsmaelSWO/league-backend/internal/metrics"
	"github.com/IsmaelSWO/league-backend/internal/rules"
)

const (
	msgPlayerCreateFailed = "La creación del jugador falló, inténtelo de nuevo."
	msgPlayerUpdateFailed = "Algo fue mal, no se pudo actualizar al jugador."
	msgPlayerDeleteFailed = "Algo fue mal, no se pudo eliminar al jugador."
	msgPlayerTitleMissing = "El jugador necesita un nombre."
	msgInvalidClause      = "La cláusula de rescisión debe ser mayor que cero."
	msgInvalidMarketValue = "El valor de mercado no puede ser negativo."
)

type playerService struct {
	uowFactory  domain.UnitOfWorkFactory
	policy      *rules.TransferPolicy
	rosterLimit int
	now         Clock
}

// NewPlayerService creates a new player service
func NewPlayerService(uowFactory domain.UnitOfWorkFactory, policy *rules.TransferPolicy, rosterLimit int, now Clock) domain.PlayerService {
	if now == nil {
		now = systemClock
	}
	if policy == nil {
		policy = rules.NewTransferPolicy(nil)
	}
	return &playerService{
		uowFactory:  uowFactory,
		policy:      policy,
		rosterLimit: rosterLimit,
		now:         now,
	}
}

// CreatePlayer adds a player to the creator's roster. Bids on the player being
// acquired are not counted as pending, since this call completes that purchase.
func (s *playerService) CreatePlayer(ctx context.Context, input domain.CreatePlayerInput) (player *domain.Player, err error) {
	defer func() { metrics.RecordTransferOperation("create_player", err) }()

	if strings.TrimSpace(input.Title) == "" {
		return nil, validationError(msgPlayerTitleMissing)
	}
	if input.Clausula <= 0 {
		return nil, validationError(msgInvalidClause)
	}

	uow, err := begin(ctx, s.uowFactory)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback() // No-op if already committed

	creator, err := uow.UserRepository().GetByID(ctx, input.CreatorID)
	if err != nil {
		return nil, persistenceError("create_player", msgPlayerCreateFailed, err)
	}
	if creator == nil {
		return nil, notFound("No se encontró un usuario con ese id")
	}

	openOffers, err := uow.OfferRepository().GetByBidder(ctx, creator.ID)
	if err != nil {
		return nil, persistenceError("create_player", msgOfferLookupFailed, err)
	}

	pending := rules.CountPendingOffers(openOffers, input.AcquiredPlayerID)
	if err := rules.CheckRosterCapacity(creator.RosterSize(), pending, s.rosterLimit); err != nil {
		return nil, err
	}

	creatorID := creator.ID
	player = &domain.Player{
		ID:              uuid.New(),
		Title:           input.Title,
		Clausula:        input.Clausula,
		ClausulaInicial: input.ClausulaInicial,
		MarketValue:     0,
		Transferible:    false,
		Image:           input.Image,
		Escudo:          input.Escudo,
		Expires:         input.Expires,
		Address:         input.Address,
		PosIndex:        input.PosIndex,
		Team:            input.Team,
		CreatorName:     firstNonEmpty(input.CreatorName, creator.Name),
		CreatorID:       &creatorID,
		Ofertas:         []uuid.UUID{},
		CreatedAt:       s.now().UTC().Truncate(time.Microsecond),
	}

	if err := uow.PlayerRepository().Create(ctx, player); err != nil {
		return nil, persistenceError("create_player", msgPlayerCreateFailed, err)
	}
	if err := uow.UserRepository().AddPlayer(ctx, creator.ID, player.ID); err != nil {
		return nil, persistenceError("create_player", msgPlayerCreateFailed, err)
	}

	if err := commit("create_player", uow, msgPlayerCreateFailed); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"player_id":  player.ID,
		"creator_id": creator.ID,
		"actor_id":   input.ActorID,
		"title":      player.Title,
	}).Info("Player created")

	return player, nil
}

// CreateDiscardedPlayer releases a player into the unowned pool, remembering who
// discarded it and until when it can be reclaimed.
func (s *playerService) CreateDiscardedPlayer(ctx context.Context, input domain.CreateDiscardedPlayerInput) (player *domain.Player, err error) {
	defer func() { metrics.RecordTransferOperation("create_discarded_player", err) }()

	if strings.TrimSpace(input.Title) == "" {
		return nil, validationError(msgPlayerTitleMissing)
	}

	uow, err := begin(ctx, s.uowFactory)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback() // No-op if already committed

	owner, err := uow.UserRepository().GetByID(ctx, input.OwnerID)
	if err != nil {
		return nil, persistenceError("create_discarded_player", msgPlayerLookupFailed, err)
	}
	if owner == nil {
		return nil, notFound(msgUserNotFound)
	}

	ownerID := owner.ID
	player = &domain.Player{
		ID:                 uuid.New(),
		Title:              input.Title,
		Clausula:           input.Clausula,
		ClausulaInicial:    input.ClausulaInicial,
		Image:              input.Image,
		Escudo:             input.Escudo,
		Expires:            input.Expires,
		Address:            input.Address,
		PosIndex:           input.PosIndex,
		Team:               input.Team,
		CreatorName:        input.CreatorName,
		OwnerDiscard:       &ownerID,
		DiscardExpiresDate: input.DiscardExpiresDate,
		Ofertas:            []uuid.UUID{},
		CreatedAt:          s.now().UTC().Truncate(time.Microsecond),
	}

	if err := uow.PlayerRepository().Create(ctx, player); err != nil {
		return nil, persistenceError("create_discarded_player", "La creación del jugador falló, inténtelo de nuevo", err)
	}

	if err := commit("create_discarded_player", uow, msgPlayerCreateFailed); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"player_id": player.ID,
		"owner_id":  owner.ID,
	}).Info("Discarded player created")

	return player, nil
}

// UpdatePlayerClause raises the release clause. The increase is paid for out of
// the owner's budget, so it must fit next to their open bids.
func (s *playerService) UpdatePlayerClause(ctx context.Context, actorID, playerID uuid.UUID, clausula int64) (player *domain.Player, err error) {
	defer func() { metrics.RecordTransferOperation("update_player_clause", err) }()

	uow, err := begin(ctx, s.uowFactory)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback() // No-op if already committed

	player, err = uow.PlayerRepository().GetByID(ctx, playerID)
	if err != nil {
		return nil, persistenceError("update_player_clause", msgPlayerUpdateFailed, err)
	}
	if player == nil {
		return nil, notFound(msgPlayerNotFound)
	}

	if err := rules.CheckAuthorization(actorID, player.CreatorID); err != nil {
		return nil, err
	}
	if err := rules.CheckClauseMonotonic(player.Clausula, clausula); err != nil {
		return nil, err
	}

	actor, err := uow.UserRepository().GetByID(ctx, actorID)
	if err != nil {
		return nil, persistenceError("update_player_clause", msgPlayerLookupFailed, err)
	}
	if actor == nil {
		return nil, notFound(msgUserNotFound)
	}

	openOffers, err := uow.OfferRepository().GetByBidder(ctx, actor.ID)
	if err != nil {
		return nil, persistenceError("update_player_clause", msgOfferLookupFailed, err)
	}

	debt := rules.ComputeOutstandingDebt(openOffers, uuid.Nil)
	if err := rules.CheckBudget(actor.Presupuesto, clausula-player.Clausula, debt); err != nil {
		return nil, err
	}

	if err := uow.PlayerRepository().UpdateClause(ctx, player.ID, clausula); err != nil {
		return nil, persistenceError("update_player_clause", msgPlayerUpdateFailed, err)
	}

	if err := commit("update_player_clause", uow, msgPlayerUpdateFailed); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"player_id": player.ID,
		"from":      player.Clausula,
		"to":        clausula,
	}).Info("Player clause raised")

	player.Clausula = clausula
	return player, nil
}

// UpdatePlayerTransferible lists or unlists a player. The asking price may not exceed the clause.
func (s *playerService) UpdatePlayerTransferible(ctx context.Context, actorID, playerID uuid.UUID, transferible bool, marketValue int64) (player *domain.Player, err error) {
	defer func() { metrics.RecordTransferOperation("update_player_transferible", err) }()

	if marketValue < 0 {
		return nil, validationError(msgInvalidMarketValue)
	}

	uow, err := begin(ctx, s.uowFactory)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback() // No-op if already committed

	player, err = uow.PlayerRepository().GetByID(ctx, playerID)
	if err != nil {
		return nil, persistenceError("update_player_transferible", msgPlayerUpdateFailed, err)
	}
	if player == nil {
		return nil, notFound(msgPlayerNotFound)
	}

	if err := rules.CheckAuthorization(actorID, player.CreatorID); err != nil {
		return nil, err
	}
	if err := rules.CheckTransferListingValue(player.Clausula, marketValue); err != nil {
		return nil, err
	}

	if err := uow.PlayerRepository().UpdateTransferible(ctx, player.ID, transferible, marketValue); err != nil {
		return nil, persistenceError("update_player_transferible", msgPlayerUpdateFailed, err)
	}

	if err := commit("update_player_transferible", uow, msgPlayerUpdateFailed); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"player_id":    player.ID,
		"transferible": transferible,
		"market_value": marketValue,
	}).Info("Player listing updated")

	player.Transferible = transferible
	player.MarketValue = marketValue
	return player, nil
}

// DeletePlayer removes a player from its owner, together with every bid on it.
// When someone other than the owner does it (a transfer or a clause buyout) their
// roster must have room and the market must be open for the action.
func (s *playerService) DeletePlayer(ctx context.Context, actorID, playerID uuid.UUID, action domain.ActionType) (err error) {
	defer func() { metrics.RecordTransferOperation("delete_player", err) }()

	uow, err := begin(ctx, s.uowFactory)
	if err != nil {
		return err
	}
	defer uow.Rollback() // No-op if already committed

	player, err := uow.PlayerRepository().GetByID(ctx, playerID)
	if err != nil {
		return persistenceError("delete_player", msgPlayerDeleteFailed, err)
	}
	if player == nil {
		return notFound("No se ha encontrado el jugador con ese id")
	}

	actor, err := uow.UserRepository().GetByID(ctx, actorID)
	if err != nil {
		return persistenceError("delete_player", msgPlayerDeleteFailed, err)
	}
	if actor == nil {
		return notFound(msgUserNotFound)
	}

	if !player.IsOwnedBy(actor.ID) {
		openOffers, err := uow.OfferRepository().GetByBidder(ctx, actor.ID)
		if err != nil {
			return persistenceError("delete_player", msgOfferLookupFailed, err)
		}
		pending := rules.CountPendingOffers(openOffers, player.ID)
		if err := rules.CheckRosterCapacity(actor.RosterSize(), pending, s.rosterLimit); err != nil {
			return err
		}
	}

	if err := s.policy.CheckTransferAllowed(s.now(), actor, player, action); err != nil {
		log.WithFields(log.Fields{
			"player_id": player.ID,
			"actor_id":  actor.ID,
			"action":    action,
		}).Info("Player removal refused by market policy")
		return err
	}

	removed, err := removePlayer(ctx, uow, player)
	if err != nil {
		return persistenceError("delete_player", msgPlayerDeleteFailed, err)
	}

	if err := commit("delete_player", uow, msgPlayerDeleteFailed); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"player_id":      player.ID,
		"actor_id":       actor.ID,
		"action":         action,
		"offers_removed": removed,
	}).Info("Player deleted")

	return nil
}

// DeleteDiscardedPlayer lets acquirerID claim a player from the discard pool.
// The roster cap and the market rules are checked against the acquirer.
func (s *playerService) DeleteDiscardedPlayer(ctx context.Context, actorID, playerID, acquirerID uuid.UUID, action domain.ActionType) (err error) {
	defer func() { metrics.RecordTransferOperation("delete_discarded_player", err) }()

	uow, err := begin(ctx, s.uowFactory)
	if err != nil {
		return err
	}
	defer uow.Rollback() // No-op if already committed

	player, err := uow.PlayerRepository().GetByID(ctx, playerID)
	if err != nil {
		return persistenceError("delete_discarded_player", msgPlayerDeleteFailed, err)
	}
	if player == nil {
		return notFound("No se encontró un jugador para ese id.")
	}

	acquirer, err := uow.UserRepository().GetByID(ctx, acquirerID)
	if err != nil {
		return persistenceError("delete_discarded_player", msgUserLookupFailed, err)
	}
	if acquirer == nil {
		return notFound("No se encontró un usuario para ese id.")
	}

	openOffers, err := uow.OfferRepository().GetByBidder(ctx, acquirer.ID)
	if err != nil {
		return persistenceError("delete_discarded_player", msgOfferLookupFailed, err)
	}
	if err := rules.CheckRosterCapacity(acquirer.RosterSize(), len(openOffers), s.rosterLimit); err != nil {
		return err
	}

	if err := s.policy.CheckTransferAllowed(s.now(), acquirer, player, action); err != nil {
		return err
	}

	if _, err := removePlayer(ctx, uow, player); err != nil {
		return persistenceError("delete_discarded_player", msgPlayerDeleteFailed, err)
	}

	if err := commit("delete_discarded_player", uow, msgPlayerDeleteFailed); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"player_id":   player.ID,
		"acquirer_id": acquirer.ID,
		"actor_id":    actorID,
	}).Info("Discarded player claimed")

	return nil
}

// SweepExpiredDiscards deletes discarded players nobody claimed in time. Each
// player is removed in its own unit of work; one failure does not stop the sweep.
func (s *playerService) SweepExpiredDiscards(ctx context.Context) (int, error) {
	now := s.now()

	uow, err := begin(ctx, s.uowFactory)
	if err != nil {
		return 0, err
	}
	expired, err := uow.PlayerRepository().GetExpiredDiscards(ctx, now.UnixMilli())
	uow.Rollback()
	if err != nil {
		return 0, persistenceError("sweep_expired_discards", msgPlayerListFailed, err)
	}

	removed := 0
	for _, player := range expired {
		ok, err := s.sweepOne(ctx, player.ID, now)
		if err != nil {
			log.WithError(err).WithField("player_id", player.ID).Warn("Failed to remove expired discarded player")
			continue
		}
		if ok {
			removed++
		}
	}

	metrics.RecordSweep(removed)
	if removed > 0 {
		log.WithFields(log.Fields{
			"removed": removed,
			"found":   len(expired),
		}).Info("Expired discarded players removed")
	}

	return removed, nil
}

func (s *playerService) sweepOne(ctx context.Context, playerID uuid.UUID, now time.Time) (bool, error) {
	uow, err := begin(ctx, s.uowFactory)
	if err != nil {
		return false, err
	}
	defer uow.Rollback()

	// re-read inside the transaction; the player may have been claimed meanwhile
	player, err := uow.PlayerRepository().GetByID(ctx, playerID)
	if err != nil {
		return false, err
	}
	if player == nil || !player.DiscardExpired(now) {
		return false, nil
	}

	if _, err := removePlayer(ctx, uow, player); err != nil {
		return false, err
	}
	if err := uow.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// GetPlayer retrieves a single player
func (s *playerService) GetPlayer(ctx context.Context, playerID uuid.UUID) (*domain.Player, error) {
	uow, err := begin(ctx, s.uowFactory)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	player, err := uow.PlayerRepository().GetByID(ctx, playerID)
	if err != nil {
		return nil, persistenceError("get_player", msgPlayerLookupFailed, err)
	}
	if player == nil {
		return nil, notFound(msgPlayerNotFound)
	}
	return player, nil
}

// ListPlayersByUser returns a user's roster in order
func (s *playerService) ListPlayersByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Player, error) {
	uow, err := begin(ctx, s.uowFactory)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return nil, persistenceError("list_players_by_user", msgPlayerListFailed, err)
	}
	if user == nil {
		return nil, notFound("No se ha encontrado a un usuario con ese id.")
	}

	players, err := uow.PlayerRepository().GetByCreator(ctx, user.ID)
	if err != nil {
		return nil, persistenceError("list_players_by_user", msgPlayerListFailed, err)
	}
	return players, nil
}

// ListMarketPlayers returns players listed for sale and the club-less pool, highest clause first
func (s *playerService) ListMarketPlayers(ctx context.Context) ([]*domain.Player, error) {
	uow, err := begin(ctx, s.uowFactory)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	players, err := uow.PlayerRepository().GetMarket(ctx)
	if err != nil {
		return nil, persistenceError("list_market_players", msgPlayerListFailed, err)
	}
	return players, nil
}

// ListPlayersWithOffers returns every player with its bids expanded, highest clause first
func (s *playerService) ListPlayersWithOffers(ctx context.Context) ([]*domain.PlayerWithOffers, error) {
	uow, err := begin(ctx, s.uowFactory)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	players, err := uow.PlayerRepository().GetAll(ctx)
	if err != nil {
		return nil, persistenceError("list_players_with_offers", msgPlayerListFailed, err)
	}

	result := make([]*domain.PlayerWithOffers, 0, len(players))
	for _, player := range players {
		offers, err := uow.OfferRepository().GetByPlayer(ctx, player.ID)
		if err != nil {
			return nil, persistenceError("list_players_with_offers", msgOfferLookupFailed, err)
		}
		result = append(result, &domain.PlayerWithOffers{Player: *player, Ofertas: offers})
	}
	return result, nil
}

// removePlayer deletes a player and everything pointing at it: the offer list,
// the offers themselves and the owner's roster entry. Returns the number of offers removed.
func removePlayer(ctx context.Context, uow domain.UnitOfWork, player *domain.Player) (int64, error) {
	if err := uow.PlayerRepository().ClearOffers(ctx, player.ID); err != nil {
		return 0, err
	}
	removed, err := uow.OfferRepository().DeleteByPlayer(ctx, player.ID)
	if err != nil {
		return 0, err
	}
	if player.CreatorID != nil {
		if err := uow.UserRepository().RemovePlayer(ctx, *player.CreatorID, player.ID); err != nil {
			return 0, err
		}
	}
	if err := uow.PlayerRepository().Delete(ctx, player.ID); err != nil {
		return 0, err
	}
	return removed, nil
}
