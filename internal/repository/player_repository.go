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

const playerColumns = `
	p.id, p.title, p.clausula, p.clausula_inicial, p.market_value, p.transferible,
	p.image, p.escudo, p.expires, p.address, p.pos_index, p.team, p.creator_name,
	p.creator_id, p.owner_discard_id, p.discard_expires_date, p.created_at,
	COALESCE((
		SELECT array_agg(po.offer_id ORDER BY po.position)
		FROM player_offers po
		WHERE po.player_id = p.id
	), '{}')
`

// PlayerRepositoryImpl implements the PlayerRepository interface
type PlayerRepositoryImpl struct {
	q queryable
}

// NewPlayerRepository creates a new PlayerRepository
func NewPlayerRepository(db *pgxpool.Pool) domain.PlayerRepository {
	return &PlayerRepositoryImpl{q: db}
}

func newPlayerRepositoryWithTx(tx queryable) *PlayerRepositoryImpl {
	return &PlayerRepositoryImpl{q: tx}
}

// Create inserts a new player
func (r *PlayerRepositoryImpl) Create(ctx context.Context, player *domain.Player) error {
	query := `
		INSERT INTO players (
			id, title, clausula, clausula_inicial, market_value, transferible,
			image, escudo, expires, address, pos_index, team, creator_name,
			creator_id, owner_discard_id, discard_expires_date, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		)
	`

	_, err := r.q.Exec(ctx, query,
		player.ID,
		player.Title,
		player.Clausula,
		player.ClausulaInicial,
		player.MarketValue,
		player.Transferible,
		player.Image,
		player.Escudo,
		player.Expires,
		player.Address,
		player.PosIndex,
		player.Team,
		player.CreatorName,
		player.CreatorID,
		player.OwnerDiscard,
		player.DiscardExpiresDate,
		player.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}

	return nil
}

// GetByID retrieves a player by ID
func (r *PlayerRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players p WHERE p.id = $1`

	player, err := scanPlayer(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player by ID %s: %w", id, err)
	}

	return player, nil
}

// GetByCreator retrieves the players created by a user, in roster order
func (r *PlayerRepositoryImpl) GetByCreator(ctx context.Context, userID uuid.UUID) ([]*domain.Player, error) {
	query := `
		SELECT ` + playerColumns + `
		FROM players p
		LEFT JOIN user_players up ON up.player_id = p.id AND up.user_id = p.creator_id
		WHERE p.creator_id = $1
		ORDER BY up.position ASC NULLS LAST, p.created_at ASC
	`
	return r.queryPlayers(ctx, query, userID)
}

// GetMarket retrieves players listed for sale plus the club-less pool
func (r *PlayerRepositoryImpl) GetMarket(ctx context.Context) ([]*domain.Player, error) {
	query := `
		SELECT ` + playerColumns + `
		FROM players p
		WHERE p.transferible = TRUE OR p.team = $1
		ORDER BY p.clausula DESC, p.created_at ASC
	`
	return r.queryPlayers(ctx, query, domain.TeamWithoutClub)
}

// GetAll retrieves every player
func (r *PlayerRepositoryImpl) GetAll(ctx context.Context) ([]*domain.Player, error) {
	query := `
		SELECT ` + playerColumns + `
		FROM players p
		ORDER BY p.clausula DESC, p.created_at ASC
	`
	return r.queryPlayers(ctx, query)
}

// GetExpiredDiscards retrieves unowned discarded players past their reclaim deadline
func (r *PlayerRepositoryImpl) GetExpiredDiscards(ctx context.Context, nowMillis int64) ([]*domain.Player, error) {
	query := `
		SELECT ` + playerColumns + `
		FROM players p
		WHERE p.creator_id IS NULL
			AND p.owner_discard_id IS NOT NULL
			AND p.discard_expires_date IS NOT NULL
			AND p.discard_expires_date <= $1
		ORDER BY p.discard_expires_date ASC
	`
	return r.queryPlayers(ctx, query, nowMillis)
}

// UpdateClause sets the player's clausula
func (r *PlayerRepositoryImpl) UpdateClause(ctx context.Context, playerID uuid.UUID, clausula int64) error {
	result, err := r.q.Exec(ctx, `UPDATE players SET clausula = $1 WHERE id = $2`, clausula, playerID)
	if err != nil {
		return fmt.Errorf("failed to update clause for player %s: %w", playerID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("player %s not found", playerID)
	}
	return nil
}

// UpdateTransferible sets the listing flag and market value
func (r *PlayerRepositoryImpl) UpdateTransferible(ctx context.Context, playerID uuid.UUID, transferible bool, marketValue int64) error {
	result, err := r.q.Exec(ctx,
		`UPDATE players SET transferible = $1, market_value = $2 WHERE id = $3`,
		transferible, marketValue, playerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transferible for player %s: %w", playerID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("player %s not found", playerID)
	}
	return nil
}

// AddOffer appends an offer to the player's offer list
func (r *PlayerRepositoryImpl) AddOffer(ctx context.Context, playerID, offerID uuid.UUID) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO player_offers (player_id, offer_id)
		VALUES ($1, $2)
		ON CONFLICT (player_id, offer_id) DO NOTHING
	`, playerID, offerID)
	if err != nil {
		return fmt.Errorf("failed to add offer %s to player %s: %w", offerID, playerID, err)
	}
	return nil
}

// RemoveOffer removes an offer from the player's offer list
func (r *PlayerRepositoryImpl) RemoveOffer(ctx context.Context, playerID, offerID uuid.UUID) error {
	_, err := r.q.Exec(ctx, `DELETE FROM player_offers WHERE player_id = $1 AND offer_id = $2`, playerID, offerID)
	if err != nil {
		return fmt.Errorf("failed to remove offer %s from player %s: %w", offerID, playerID, err)
	}
	return nil
}

// ClearOffers empties the player's offer list
func (r *PlayerRepositoryImpl) ClearOffers(ctx context.Context, playerID uuid.UUID) error {
	_, err := r.q.Exec(ctx, `DELETE FROM player_offers WHERE player_id = $1`, playerID)
	if err != nil {
		return fmt.Errorf("failed to clear offers of player %s: %w", playerID, err)
	}
	return nil
}

// Delete removes the player row. Join rows and offers must be gone first.
func (r *PlayerRepositoryImpl) Delete(ctx context.Context, playerID uuid.UUID) error {
	result, err := r.q.Exec(ctx, `DELETE FROM players WHERE id = $1`, playerID)
	if err != nil {
		return fmt.Errorf("failed to delete player %s: %w", playerID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("player %s not found", playerID)
	}
	return nil
}

func (r *PlayerRepositoryImpl) queryPlayers(ctx context.Context, query string, args ...any) ([]*domain.Player, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	players := make([]*domain.Player, 0)
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, player)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating players: %w", err)
	}

	return players, nil
}

func scanPlayer(row pgx.Row) (*domain.Player, error) {
	p := &domain.Player{}
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Clausula,
		&p.ClausulaInicial,
		&p.MarketValue,
		&p.Transferible,
		&p.Image,
		&p.Escudo,
		&p.Expires,
		&p.Address,
		&p.PosIndex,
		&p.Team,
		&p.CreatorName,
		&p.CreatorID,
		&p.OwnerDiscard,
		&p.DiscardExpiresDate,
		&p.CreatedAt,
		&p.Ofertas,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}
