package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/IsmaelSWO/league-backend/internal/domain"
	"github.com/IsmaelSWO/league-backend/internal/metrics"
	"github.com/IsmaelSWO/league-backend/internal/rules"
)

const (
	msgOfferCreateFailed = "La creación de la oferta falló, inténtelo de nuevo."
	msgOfferUpdateFailed = "Algo fue mal, no se pudo actualizar la oferta."
	msgOfferDeleteFailed = "Algo fue mal, no se pudo eliminar la oferta."
	msgOfferGetFailed    = "Algo fue mal, no se pudo obtener la oferta."
)

type offerService struct {
	uowFactory  domain.UnitOfWorkFactory
	rosterLimit int
	now         Clock
}

// NewOfferService creates a new offer service
func NewOfferService(uowFactory domain.UnitOfWorkFactory, rosterLimit int, now Clock) domain.OfferService {
	if now == nil {
		now = systemClock
	}
	return &offerService{
		uowFactory:  uowFactory,
		rosterLimit: rosterLimit,
		now:         now,
	}
}

// CreateOffer places a bid by the actor on a player. The roster cap counts the
// actor's owned players plus every open bid; the budget covers all open bids plus this one.
func (s *offerService) CreateOffer(ctx context.Context, input domain.CreateOfferInput) (offer *domain.Offer, err error) {
	defer func() { metrics.RecordTransferOperation("create_offer", err) }()

	if input.Cantidad <= 0 {
		return nil, validationError(msgInvalidAmount)
	}

	uow, err := begin(ctx, s.uowFactory)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback() // No-op if already committed

	actor, err := uow.UserRepository().GetByID(ctx, input.ActorID)
	if err != nil {
		return nil, persistenceError("create_offer", msgUserLookupFailed, err)
	}
	if actor == nil {
		return nil, notFound(msgUserNotFound)
	}

	player, err := uow.PlayerRepository().GetByID(ctx, input.PlayerID)
	if err != nil {
		return nil, persistenceError("create_offer", msgOfferCreateFailed, err)
	}
	if player == nil {
		return nil, notFound("No se encontró a un jugador con ese id.")
	}

	openOffers, err := uow.OfferRepository().GetByBidder(ctx, actor.ID)
	if err != nil {
		return nil, persistenceError("create_offer", msgOfferLookupFailed, err)
	}

	if err := rules.CheckRosterCapacity(actor.RosterSize(), len(openOffers), s.rosterLimit); err != nil {
		return nil, err
	}

	debt := rules.ComputeOutstandingDebt(openOffers, uuid.Nil)
	if err := rules.CheckBudget(actor.Presupuesto, input.Cantidad, debt); err != nil {
		log.WithFields(log.Fields{
			"user_id":     actor.ID,
			"presupuesto": actor.Presupuesto,
			"debt":        debt,
			"cantidad":    input.Cantidad,
		}).Info("Offer rejected by budget check")
		return nil, err
	}

	offer = &domain.Offer{
		ID:              uuid.New(),
		Cantidad:        input.Cantidad,
		OfertanteID:     actor.ID,
		PlayerID:        player.ID,
		EquipoOfertante: firstNonEmpty(input.EquipoOfertante, actor.Equipo),
		NombreOfertante: firstNonEmpty(input.NombreOfertante, actor.Name),
		EscudoOfertante: firstNonEmpty(input.EscudoOfertante, actor.Image),
		CreatedAt:       s.now().UTC().Truncate(time.Microsecond),
	}

	if err := uow.OfferRepository().Create(ctx, offer); err != nil {
		return nil, persistenceError("create_offer", msgOfferCreateFailed, err)
	}
	if err := uow.PlayerRepository().AddOffer(ctx, player.ID, offer.ID); err != nil {
		return nil, persistenceError("create_offer", msgOfferCreateFailed, err)
	}

	if err := commit("create_offer", uow, msgOfferCreateFailed); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"offer_id":  offer.ID,
		"player_id": player.ID,
		"bidder_id": actor.ID,
		"cantidad":  offer.Cantidad,
	}).Info("Offer created")

	return offer, nil
}

// UpdateOfferAmount changes the amount of a bid, checked against the actor's budget.
// Bids on the same player are left out of the outstanding debt so the old amount is not
// counted twice.
func (s *offerService) UpdateOfferAmount(ctx context.Context, actorID, offerID uuid.UUID, cantidad int64) (offer *domain.Offer, err error) {
	defer func() { metrics.RecordTransferOperation("update_offer", err) }()

	if cantidad <= 0 {
		return nil, validationError(msgInvalidAmount)
	}

	uow, err := begin(ctx, s.uowFactory)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback() // No-op if already committed

	offer, err = uow.OfferRepository().GetByID(ctx, offerID)
	if err != nil {
		return nil, persistenceError("update_offer", msgOfferUpdateFailed, err)
	}
	if offer == nil {
		return nil, notFound(msgOfferNotFound)
	}

	actor, err := uow.UserRepository().GetByID(ctx, actorID)
	if err != nil {
		return nil, persistenceError("update_offer", msgUserLookupFailed, err)
	}
	if actor == nil {
		return nil, notFound("No se pudo encontrar a un usuario con ese id.")
	}

	openOffers, err := uow.OfferRepository().GetByBidder(ctx, actor.ID)
	if err != nil {
		return nil, persistenceError("update_offer", msgOfferLookupFailed, err)
	}

	debt := rules.ComputeOutstandingDebt(openOffers, offer.PlayerID)
	if err := rules.CheckBudget(actor.Presupuesto, cantidad, debt); err != nil {
		return nil, err
	}

	if err := uow.OfferRepository().UpdateAmount(ctx, offer.ID, cantidad); err != nil {
		return nil, persistenceError("update_offer", msgOfferUpdateFailed, err)
	}

	if err := commit("update_offer", uow, msgOfferUpdateFailed); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"offer_id": offer.ID,
		"from":     offer.Cantidad,
		"to":       cantidad,
	}).Info("Offer amount updated")

	offer.Cantidad = cantidad
	return offer, nil
}

// DeleteOffer withdraws a bid, as when the owner rejects it or the bidder drops it
func (s *offerService) DeleteOffer(ctx context.Context, actorID, offerID uuid.UUID) (err error) {
	defer func() { metrics.RecordTransferOperation("delete_offer", err) }()

	uow, err := begin(ctx, s.uowFactory)
	if err != nil {
		return err
	}
	defer uow.Rollback() // No-op if already committed

	offer, err := uow.OfferRepository().GetByID(ctx, offerID)
	if err != nil {
		return persistenceError("delete_offer", msgOfferDeleteFailed, err)
	}
	if offer == nil {
		return notFound("No se pudo encontrar una oferta para ese id.")
	}

	player, err := uow.PlayerRepository().GetByID(ctx, offer.PlayerID)
	if err != nil {
		return persistenceError("delete_offer", msgOfferDeleteFailed, err)
	}

	if player != nil {
		if err := uow.PlayerRepository().RemoveOffer(ctx, player.ID, offer.ID); err != nil {
			return persistenceError("delete_offer", msgOfferDeleteFailed, err)
		}
	}
	if err := uow.OfferRepository().Delete(ctx, offer.ID); err != nil {
		return persistenceError("delete_offer", msgOfferDeleteFailed, err)
	}

	if err := commit("delete_offer", uow, msgOfferDeleteFailed); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"offer_id":  offer.ID,
		"player_id": offer.PlayerID,
		"actor_id":  actorID,
	}).Info("Offer deleted")

	return nil
}

// CheckOfferBudget reports whether the actor could commit cantidad to playerID
// on top of their other open bids. Nothing is written.
func (s *offerService) CheckOfferBudget(ctx context.Context, actorID uuid.UUID, cantidad int64, playerID uuid.UUID) error {
	if cantidad < 0 {
		return validationError(msgInvalidAmount)
	}

	uow, err := begin(ctx, s.uowFactory)
	if err != nil {
		return err
	}
	defer uow.Rollback()

	actor, err := uow.UserRepository().GetByID(ctx, actorID)
	if err != nil {
		return persistenceError("check_offer_budget", msgUserLookupFailed, err)
	}
	if actor == nil {
		return notFound("No se pudo encontrar el usuario con ese id.")
	}

	openOffers, err := uow.OfferRepository().GetByBidder(ctx, actor.ID)
	if err != nil {
		return persistenceError("check_offer_budget", msgOfferLookupFailed, err)
	}

	return rules.CheckBudget(actor.Presupuesto, cantidad, rules.ComputeOutstandingDebt(openOffers, playerID))
}

// GetOffer retrieves a single offer
func (s *offerService) GetOffer(ctx context.Context, offerID uuid.UUID) (*domain.Offer, error) {
	uow, err := begin(ctx, s.uowFactory)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	offer, err := uow.OfferRepository().GetByID(ctx, offerID)
	if err != nil {
		return nil, persistenceError("get_offer", msgOfferGetFailed, err)
	}
	if offer == nil {
		return nil, notFound(msgOfferNotFound)
	}
	return offer, nil
}

// ListOffersByPlayer returns a player's offers in the order they were placed.
// An unknown player has no offers.
func (s *offerService) ListOffersByPlayer(ctx context.Context, playerID uuid.UUID) ([]*domain.Offer, error) {
	uow, err := begin(ctx, s.uowFactory)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	offers, err := uow.OfferRepository().GetByPlayer(ctx, playerID)
	if err != nil {
		return nil, persistenceError("list_offers_by_player", msgOfferLookupFailed, err)
	}
	return offers, nil
}

// ListMarketOffers returns the offers on players listed for sale
func (s *offerService) ListMarketOffers(ctx context.Context) ([]*domain.Offer, error) {
	uow, err := begin(ctx, s.uowFactory)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	offers, err := uow.OfferRepository().GetOnTransferiblePlayers(ctx)
	if err != nil {
		return nil, persistenceError("list_market_offers", msgOfferLookupFailed, err)
	}
	return offers, nil
}

// HasReceivedOffers reports whether any player in the user's roster has a bid on it
func (s *offerService) HasReceivedOffers(ctx context.Context, userID uuid.UUID) (bool, error) {
	uow, err := begin(ctx, s.uowFactory)
	if err != nil {
		return false, err
	}
	defer uow.Rollback()

	count, err := uow.OfferRepository().CountReceivedByOwner(ctx, userID, "")
	if err != nil {
		return false, persistenceError("has_received_offers", msgPlayerListFailed, err)
	}
	return count > 0, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
