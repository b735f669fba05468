package usecase

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/IsmaelSWO/league-backend/internal/domain"
	"github.com/IsmaelSWO/league-backend/internal/rules"
)

var (
	summerDay = time.Date(2024, time.July, 16, 12, 0, 0, 0, time.UTC)
	winterDay = time.Date(2024, time.July, 2, 12, 0, 0, 0, time.UTC)
	closedDay = time.Date(2024, time.July, 25, 12, 0, 0, 0, time.UTC)
)

type testDeps struct {
	factory  *MockUnitOfWorkFactory
	uow      *MockUnitOfWork
	users    *MockUserRepository
	players  *MockPlayerRepository
	offers   *MockOfferRepository
	messages *MockMessageRepository
}

func newTestDeps() *testDeps {
	d := &testDeps{
		factory:  new(MockUnitOfWorkFactory),
		uow:      new(MockUnitOfWork),
		users:    new(MockUserRepository),
		players:  new(MockPlayerRepository),
		offers:   new(MockOfferRepository),
		messages: new(MockMessageRepository),
	}
	d.uow.SetRepositories(d.users, d.players, d.offers, d.messages)

	d.factory.On("Create").Return(d.uow)
	d.uow.On("Begin", mock.Anything).Return(nil)
	d.uow.On("Rollback").Return(nil).Maybe()
	return d
}

func (d *testDeps) expectCommit() {
	d.uow.On("Commit").Return(nil)
}

func (d *testDeps) assertExpectations(t *testing.T) {
	t.Helper()
	d.factory.AssertExpectations(t)
	d.uow.AssertExpectations(t)
	d.users.AssertExpectations(t)
	d.players.AssertExpectations(t)
	d.offers.AssertExpectations(t)
	d.messages.AssertExpectations(t)
}

func fixedClock(at time.Time) Clock {
	return func() time.Time { return at }
}

func testPolicy() *rules.TransferPolicy {
	return rules.NewTransferPolicy(rules.NewMarketCalendar(nil, time.UTC))
}

func newUser(equipo string, presupuesto int64, rosterSize int) *domain.User {
	user := &domain.User{
		ID:          uuid.New(),
		Name:        "manager-" + equipo,
		Equipo:      equipo,
		Email:       "manager@example.com",
		Image:       "https://example.com/crest.png",
		Division:    "Cuarta",
		Presupuesto: presupuesto,
		Players:     make([]uuid.UUID, 0, rosterSize),
	}
	for i := 0; i < rosterSize; i++ {
		user.Players = append(user.Players, uuid.New())
	}
	return user
}

func ownedPlayer(owner *domain.User, title string, clausula int64) *domain.Player {
	player := &domain.Player{
		ID:              uuid.New(),
		Title:           title,
		Clausula:        clausula,
		ClausulaInicial: clausula,
		Team:            "Real Betis",
		Ofertas:         []uuid.UUID{},
	}
	if owner != nil {
		id := owner.ID
		player.CreatorID = &id
		player.CreatorName = owner.Name
	}
	return player
}

func offerOn(bidderID, playerID uuid.UUID, cantidad int64) *domain.Offer {
	return &domain.Offer{
		ID:          uuid.New(),
		Cantidad:    cantidad,
		OfertanteID: bidderID,
		PlayerID:    playerID,
	}
}
