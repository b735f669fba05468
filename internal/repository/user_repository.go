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

const userColumns = `
	u.id, u.name, u.equipo, u.email, u.password_hash, u.image, u.division, u.presupuesto, u.created_at,
	COALESCE((
		SELECT array_agg(up.player_id ORDER BY up.position)
		FROM user_players up
		WHERE up.user_id = u.id
	), '{}')
`

// UserRepositoryImpl implements the UserRepository interface
type UserRepositoryImpl struct {
	q queryable
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &UserRepositoryImpl{q: db}
}

func newUserRepositoryWithTx(tx queryable) *UserRepositoryImpl {
	return &UserRepositoryImpl{q: tx}
}

// Create creates a new user
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (
			id, name, equipo, email, password_hash, image, division, presupuesto, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
	`

	_, err := r.q.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Equipo,
		user.Email,
		user.PasswordHash,
		user.Image,
		user.Division,
		user.Presupuesto,
		user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.id = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.email = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// GetAll retrieves all users
func (r *UserRepositoryImpl) GetAll(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u ORDER BY u.created_at ASC`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query all users: %w", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// UpdateBudget sets the user's presupuesto
func (r *UserRepositoryImpl) UpdateBudget(ctx context.Context, userID uuid.UUID, presupuesto int64) error {
	result, err := r.q.Exec(ctx, `UPDATE users SET presupuesto = $1 WHERE id = $2`, presupuesto, userID)
	if err != nil {
		return fmt.Errorf("failed to update budget for user %s: %w", userID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", userID)
	}
	return nil
}

// AddPlayer appends a player to the user's roster
func (r *UserRepositoryImpl) AddPlayer(ctx context.Context, userID, playerID uuid.UUID) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO user_players (user_id, player_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, player_id) DO NOTHING
	`, userID, playerID)
	if err != nil {
		return fmt.Errorf("failed to add player %s to user %s: %w", playerID, userID, err)
	}
	return nil
}

// RemovePlayer removes a player from the user's roster
func (r *UserRepositoryImpl) RemovePlayer(ctx context.Context, userID, playerID uuid.UUID) error {
	_, err := r.q.Exec(ctx, `DELETE FROM user_players WHERE user_id = $1 AND player_id = $2`, userID, playerID)
	if err != nil {
		return fmt.Errorf("failed to remove player %s from user %s: %w", playerID, userID, err)
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Equipo,
		&user.Email,
		&user.PasswordHash,
		&user.Image,
		&user.Division,
		&user.Presupuesto,
		&user.CreatedAt,
		&user.Players,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}
