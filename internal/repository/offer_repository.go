package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/IsmaelSWO/league-backend/internal/domain"
)

const offerColumns = `
	o.id, o.cantidad, o.bidder_id, o.player_id,
	o.equipo_ofertante, o.nombre_ofertante, o.escudo_ofertante, o.created_at
`

// OfferRepositoryImpl implements the OfferRepository interface
type OfferRepositoryImpl struct {
	q queryable
}

// NewOfferRepository creates a new OfferRepository
func NewOfferRepository(db *pgxpool.Pool) domain.OfferRepository {
	return &OfferRepositoryImpl{q: db}
}

func newOfferRepositoryWithTx(tx queryable) *OfferRepositoryImpl {
	return &OfferRepositoryImpl{q: tx}
}

// Create inserts a new offer
func (r *OfferRepositoryImpl) Create(ctx context.Context, offer *domain.Offer) error {
	query := `
		INSERT INTO offers (
			id, cantidad, bidder_id, player_id,
			equipo_ofertante, nombre_ofertante, escudo_ofertante, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
	`

	_, err := r.q.Exec(ctx, query,
		offer.ID,
		offer.Cantidad,
		offer.OfertanteID,
		offer.PlayerID,
		offer.EquipoOfertante,
		offer.NombreOfertante,
		offer.EscudoOfertante,
		offer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create offer: %w", err)
	}

	return nil
}

// GetByID retrieves an offer by ID
func (r *OfferRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers o WHERE o.id = $1`

	offer, err := scanOffer(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get offer by ID %s: %w", id, err)
	}

	return offer, nil
}

// GetByBidder retrieves every open offer placed by a user
func (r *OfferRepositoryImpl) GetByBidder(ctx context.Context, bidderID uuid.UUID) ([]*domain.Offer, error) {
	query := `
		SELECT ` + offerColumns + `
		FROM offers o
		WHERE o.bidder_id = $1
		ORDER BY o.created_at ASC
	`
	return r.queryOffers(ctx, query, bidderID)
}

// GetByPlayer retrieves the offers on a player, in offer-list order
func (r *OfferRepositoryImpl) GetByPlayer(ctx context.Context, playerID uuid.UUID) ([]*domain.Offer, error) {
	query := `
		SELECT ` + offerColumns + `
		FROM player_offers po
		JOIN offers o ON o.id = po.offer_id
		WHERE po.player_id = $1
		ORDER BY po.position ASC
	`
	return r.queryOffers(ctx, query, playerID)
}

// GetOnTransferiblePlayers retrieves offers on players listed for sale
func (r *OfferRepositoryImpl) GetOnTransferiblePlayers(ctx context.Context) ([]*domain.Offer, error) {
	query := `
		SELECT ` + offerColumns + `
		FROM offers o
		JOIN players p ON p.id = o.player_id
		WHERE p.transferible = TRUE
		ORDER BY o.created_at DESC
	`
	return r.queryOffers(ctx, query)
}

// CountReceivedByOwner counts offers on a user's players
func (r *OfferRepositoryImpl) CountReceivedByOwner(ctx context.Context, ownerID uuid.UUID, ownerName string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM offers o
		JOIN players p ON p.id = o.player_id
		WHERE p.creator_id = $1 OR ($2 <> '' AND p.creator_name = $2)
	`

	var count int
	if err := r.q.QueryRow(ctx, query, ownerID, ownerName).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count offers received by %s: %w", ownerID, err)
	}
	return count, nil
}

// UpdateAmount sets the offer's cantidad
func (r *OfferRepositoryImpl) UpdateAmount(ctx context.Context, offerID uuid.UUID, cantidad int64) error {
	result, err := r.q.Exec(ctx, `UPDATE offers SET cantidad = $1 WHERE id = $2`, cantidad, offerID)
	if err != nil {
		return fmt.Errorf("failed to update amount of offer %s: %w", offerID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("offer %s not found", offerID)
	}
	return nil
}

// Delete removes an offer
func (r *OfferRepositoryImpl) Delete(ctx context.Context, offerID uuid.UUID) error {
	result, err := r.q.Exec(ctx, `DELETE FROM offers WHERE id = $1`, offerID)
	if err != nil {
		return fmt.Errorf("failed to delete offer %s: %w", offerID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("offer %s not found", offerID)
	}
	return nil
}

// DeleteByPlayer removes every offer targeting a player
func (r *OfferRepositoryImpl) DeleteByPlayer(ctx context.Context, playerID uuid.UUID) (int64, error) {
	result, err := r.q.Exec(ctx, `DELETE FROM offers WHERE player_id = $1`, playerID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete offers of player %s: %w", playerID, err)
	}
	return result.RowsAffected(), nil
}

func (r *OfferRepositoryImpl) queryOffers(ctx context.Context, query string, args ...any) ([]*domain.Offer, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query offers: %w", err)
	}
	defer rows.Close()

	offers := make([]*domain.Offer, 0)
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		offers = append(offers, offer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating offers: %w", err)
	}

	return offers, nil
}

func scanOffer(row pgx.Row) (*domain.Offer, error) {
	o := &domain.Offer{}
	err := row.Scan(
		&o.ID,
		&o.Cantidad,
		&o.OfertanteID,
		&o.PlayerID,
		&o.EquipoOfertante,
		&o.NombreOfertante,
		&o.EscudoOfertante,
		&o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}
