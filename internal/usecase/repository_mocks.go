package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/IsmaelSWO/league-backend/internal/domain"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateBudget(ctx context.Context, userID uuid.UUID, presupuesto int64) error {
	args := m.Called(ctx, userID, presupuesto)
	return args.Error(0)
}

func (m *MockUserRepository) AddPlayer(ctx context.Context, userID, playerID uuid.UUID) error {
	args := m.Called(ctx, userID, playerID)
	return args.Error(0)
}

func (m *MockUserRepository) RemovePlayer(ctx context.Context, userID, playerID uuid.UUID) error {
	args := m.Called(ctx, userID, playerID)
	return args.Error(0)
}

// MockPlayerRepository is a mock implementation of PlayerRepository
type MockPlayerRepository struct {
	mock.Mock
}

func (m *MockPlayerRepository) Create(ctx context.Context, player *domain.Player) error {
	args := m.Called(ctx, player)
	return args.Error(0)
}

func (m *MockPlayerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Player, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Player), args.Error(1)
}

func (m *MockPlayerRepository) GetByCreator(ctx context.Context, userID uuid.UUID) ([]*domain.Player, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Player), args.Error(1)
}

func (m *MockPlayerRepository) GetMarket(ctx context.Context) ([]*domain.Player, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Player), args.Error(1)
}

func (m *MockPlayerRepository) GetAll(ctx context.Context) ([]*domain.Player, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Player), args.Error(1)
}

func (m *MockPlayerRepository) GetExpiredDiscards(ctx context.Context, nowMillis int64) ([]*domain.Player, error) {
	args := m.Called(ctx, nowMillis)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Player), args.Error(1)
}

func (m *MockPlayerRepository) UpdateClause(ctx context.Context, playerID uuid.UUID, clausula int64) error {
	args := m.Called(ctx, playerID, clausula)
	return args.Error(0)
}

func (m *MockPlayerRepository) UpdateTransferible(ctx context.Context, playerID uuid.UUID, transferible bool, marketValue int64) error {
	args := m.Called(ctx, playerID, transferible, marketValue)
	return args.Error(0)
}

func (m *MockPlayerRepository) AddOffer(ctx context.Context, playerID, offerID uuid.UUID) error {
	args := m.Called(ctx, playerID, offerID)
	return args.Error(0)
}

func (m *MockPlayerRepository) RemoveOffer(ctx context.Context, playerID, offerID uuid.UUID) error {
	args := m.Called(ctx, playerID, offerID)
	return args.Error(0)
}

func (m *MockPlayerRepository) ClearOffers(ctx context.Context, playerID uuid.UUID) error {
	args := m.Called(ctx, playerID)
	return args.Error(0)
}

func (m *MockPlayerRepository) Delete(ctx context.Context, playerID uuid.UUID) error {
	args := m.Called(ctx, playerID)
	return args.Error(0)
}

// MockOfferRepository is a mock implementation of OfferRepository
type MockOfferRepository struct {
	mock.Mock
}

func (m *MockOfferRepository) Create(ctx context.Context, offer *domain.Offer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}

func (m *MockOfferRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Offer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offer), args.Error(1)
}

func (m *MockOfferRepository) GetByBidder(ctx context.Context, bidderID uuid.UUID) ([]*domain.Offer, error) {
	args := m.Called(ctx, bidderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Offer), args.Error(1)
}

func (m *MockOfferRepository) GetByPlayer(ctx context.Context, playerID uuid.UUID) ([]*domain.Offer, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Offer), args.Error(1)
}

func (m *MockOfferRepository) GetOnTransferiblePlayers(ctx context.Context) ([]*domain.Offer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Offer), args.Error(1)
}

func (m *MockOfferRepository) CountReceivedByOwner(ctx context.Context, ownerID uuid.UUID, ownerName string) (int, error) {
	args := m.Called(ctx, ownerID, ownerName)
	return args.Int(0), args.Error(1)
}

func (m *MockOfferRepository) UpdateAmount(ctx context.Context, offerID uuid.UUID, cantidad int64) error {
	args := m.Called(ctx, offerID, cantidad)
	return args.Error(0)
}

func (m *MockOfferRepository) Delete(ctx context.Context, offerID uuid.UUID) error {
	args := m.Called(ctx, offerID)
	return args.Error(0)
}

func (m *MockOfferRepository) DeleteByPlayer(ctx context.Context, playerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, playerID)
	return args.Get(0).(int64), args.Error(1)
}

// MockMessageRepository is a mock implementation of MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, message *domain.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) GetAll(ctx context.Context) ([]*domain.Message, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Message), args.Error(1)
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Repository accessors
// hand back whatever SetRepositories registered.
type MockUnitOfWork struct {
	mock.Mock
	userRepo    domain.UserRepository
	playerRepo  domain.PlayerRepository
	offerRepo   domain.OfferRepository
	messageRepo domain.MessageRepository
}

// SetRepositories registers the repositories the unit of work exposes
func (m *MockUnitOfWork) SetRepositories(users domain.UserRepository, players domain.PlayerRepository, offers domain.OfferRepository, messages domain.MessageRepository) {
	m.userRepo = users
	m.playerRepo = players
	m.offerRepo = offers
	m.messageRepo = messages
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) UserRepository() domain.UserRepository {
	return m.userRepo
}

func (m *MockUnitOfWork) PlayerRepository() domain.PlayerRepository {
	return m.playerRepo
}

func (m *MockUnitOfWork) OfferRepository() domain.OfferRepository {
	return m.offerRepo
}

func (m *MockUnitOfWork) MessageRepository() domain.MessageRepository {
	return m.messageRepo
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() domain.UnitOfWork {
	args := m.Called()
	return args.Get(0).(domain.UnitOfWork)
}
