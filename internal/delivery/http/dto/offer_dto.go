package dto

import "github.com/IsmaelSWO/league-backend/internal/domain"

// CreateOfferRequest is the body of POST /ofertas/:clause/:q
type CreateOfferRequest struct {
	Cantidad        *int64 `json:"cantidad"`
	OfertanteID     string `json:"ofertanteId"`
	PlayerID        string `json:"playerId"`
	EquipoOfertante string `json:"equipoOfertante"`
	NombreOfertante string `json:"nombreOfertante"`
	EscudoOfertante string `json:"escudoOfertante"`
}

// UpdateOfferRequest is the body of PATCH /ofertas/:oid/:clause/:q/:pid
type UpdateOfferRequest struct {
	Cantidad *int64 `json:"cantidad"`
}

// OfferResponse wraps a single offer
type OfferResponse struct {
	Oferta *domain.Offer `json:"oferta"`
}

// OffersResponse wraps a list of offers
type OffersResponse struct {
	Ofertas []*domain.Offer `json:"ofertas"`
}
