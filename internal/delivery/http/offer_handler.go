package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/IsmaelSWO/league-backend/internal/delivery/http/dto"
	"github.com/IsmaelSWO/league-backend/internal/domain"
	"github.com/IsmaelSWO/league-backend/internal/middleware"
)

const msgOfferIDNotFound = "No se pudo encontrar la oferta con ese id."

// OfferHandler handles bids
type OfferHandler struct {
	offers domain.OfferService
}

// NewOfferHandler creates a new OfferHandler
func NewOfferHandler(offers domain.OfferService) *OfferHandler {
	return &OfferHandler{
		offers: offers,
	}
}

// ListMarketOffers returns the offers on players listed for sale
// GET /api/ofertas/mercado
func (h *OfferHandler) ListMarketOffers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	offers, err := h.offers.ListMarketOffers(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.OffersResponse{Ofertas: offers})
}

// GetOffer returns a single offer
// GET /api/ofertas/:oid
func (h *OfferHandler) GetOffer(c echo.Context) error {
	offerID, err := uuidParam(c, "oid", msgOfferIDNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	offer, err := h.offers.GetOffer(ctx, offerID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.OfferResponse{Oferta: offer})
}

// ListOffersByPlayer returns a player's offers
// GET /api/ofertas/player/:pid
func (h *OfferHandler) ListOffersByPlayer(c echo.Context) error {
	playerID, err := uuid.Parse(c.Param("pid"))
	if err != nil {
		// an unknown player has no offers
		return c.JSON(http.StatusOK, dto.OffersResponse{Ofertas: []*domain.Offer{}})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	offers, err := h.offers.ListOffersByPlayer(ctx, playerID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.OffersResponse{Ofertas: offers})
}

// HasReceivedOffers answers with a bare boolean
// GET /api/ofertas/get/receivedOffers/:uid
func (h *OfferHandler) HasReceivedOffers(c echo.Context) error {
	userID, err := uuidParam(c, "uid", "No se pudo encontrar al usuario con ese id.")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	received, err := h.offers.HasReceivedOffers(ctx, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, received)
}

// CheckOfferBudget reports whether the caller can afford :q on :pid
// GET /api/ofertas/get/:q/:pid
func (h *OfferHandler) CheckOfferBudget(c echo.Context) error {
	actorID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	amount, err := nonNegativeAmountParam(c, "q")
	if err != nil {
		return err
	}

	// a malformed :pid excludes nothing from the debt
	playerID, _ := uuid.Parse(c.Param("pid"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	if err := h.offers.CheckOfferBudget(ctx, actorID, amount, playerID); err != nil {
		return err
	}

	return MessageOK(c, msgDone)
}

// CreateOffer places a bid of :q. The :clause segment is accepted and ignored.
// POST /api/ofertas/:clause/:q
func (h *OfferHandler) CreateOffer(c echo.Context) error {
	actorID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	amount, err := amountParam(c, "q")
	if err != nil {
		return err
	}

	var req dto.CreateOfferRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if req.Cantidad != nil && *req.Cantidad != amount {
		return invalidInput(msgAmountMismatch)
	}

	playerID, err := uuid.Parse(req.PlayerID)
	if err != nil {
		return domain.NewError(domain.CodeNotFound, "No se encontró a un jugador con ese id.")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	offer, err := h.offers.CreateOffer(ctx, domain.CreateOfferInput{
		ActorID:         actorID,
		PlayerID:        playerID,
		Cantidad:        amount,
		EquipoOfertante: req.EquipoOfertante,
		NombreOfertante: req.NombreOfertante,
		EscudoOfertante: req.EscudoOfertante,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.OfferResponse{Oferta: offer})
}

// UpdateOfferAmount changes the caller's bid to :q
// PATCH /api/ofertas/:oid/:clause/:q/:pid
func (h *OfferHandler) UpdateOfferAmount(c echo.Context) error {
	actorID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	offerID, err := uuidParam(c, "oid", msgOfferIDNotFound)
	if err != nil {
		return err
	}

	amount, err := amountParam(c, "q")
	if err != nil {
		return err
	}

	var req dto.UpdateOfferRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if req.Cantidad != nil && *req.Cantidad != amount {
		return invalidInput(msgAmountMismatch)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	offer, err := h.offers.UpdateOfferAmount(ctx, actorID, offerID, amount)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.OfferResponse{Oferta: offer})
}

// DeleteOffer withdraws or rejects a bid
// DELETE /api/ofertas/:oid
func (h *OfferHandler) DeleteOffer(c echo.Context) error {
	actorID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	offerID, err := uuidParam(c, "oid", "No se pudo encontrar una oferta para ese id.")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	if err := h.offers.DeleteOffer(ctx, actorID, offerID); err != nil {
		return err
	}

	return MessageOK(c, msgOfferDeleted)
}
