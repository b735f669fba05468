package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/IsmaelSWO/league-backend/internal/domain"
)

type stubTokenIssuer struct {
	token string
	err   error
}

func (s stubTokenIssuer) Issue(userID uuid.UUID, email string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.token + ":" + userID.String(), nil
}

func newTestUserService(d *testDeps) domain.UserService {
	return NewUserService(d.factory, stubTokenIssuer{token: "signed"}, DefaultSignupDefaults(), bcrypt.MinCost, fixedClock(summerDay))
}

func TestUserService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("new manager gets the defaults", func(t *testing.T) {
		d := newTestDeps()
		service := newTestUserService(d)

		var created *domain.User
		d.users.On("GetByEmail", ctx, "pepe@example.com").Return(nil, nil)
		d.users.On("Create", ctx, mock.AnythingOfType("*domain.User")).
			Run(func(args mock.Arguments) { created = args.Get(1).(*domain.User) }).
			Return(nil)
		d.expectCommit()

		session, err := service.Signup(ctx, domain.SignupInput{
			Name:     "Pepe",
			Email:    "  Pepe@Example.com ",
			Password: "secreto",
		})
		require.NoError(t, err)
		require.NotNil(t, created)

		defaults := DefaultSignupDefaults()
		assert.Equal(t, "pepe@example.com", created.Email)
		assert.Equal(t, defaults.Equipo, created.Equipo)
		assert.Equal(t, defaults.Division, created.Division)
		assert.Equal(t, defaults.Presupuesto, created.Presupuesto)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secreto")))

		assert.Equal(t, created.ID, session.UserID)
		assert.Equal(t, "signed:"+created.ID.String(), session.Token)
		assert.Equal(t, int64(6000), session.Presupuesto)
		assert.False(t, session.HasOffers)
		d.assertExpectations(t)
	})

	t.Run("email already registered", func(t *testing.T) {
		d := newTestDeps()
		service := newTestUserService(d)

		d.users.On("GetByEmail", ctx, "pepe@example.com").Return(newUser("Real Betis", 0, 0), nil)

		_, err := service.Signup(ctx, domain.SignupInput{Name: "Pepe", Email: "pepe@example.com", Password: "secreto"})
		assert.True(t, errors.Is(err, domain.ErrValidationFailed))
		d.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		d.assertExpectations(t)
	})

	invalid := []domain.SignupInput{
		{Name: "", Email: "pepe@example.com", Password: "secreto"},
		{Name: "Pepe", Email: "not-an-email", Password: "secreto"},
		{Name: "Pepe", Email: "pepe@example.com", Password: "12345"},
	}
	for _, input := range invalid {
		factory := new(MockUnitOfWorkFactory)
		service := NewUserService(factory, stubTokenIssuer{}, DefaultSignupDefaults(), bcrypt.MinCost, nil)

		_, err := service.Signup(ctx, input)
		require.Error(t, err)
		assert.Equal(t, domain.CodeValidationFailed, domain.CodeOf(err))
		factory.AssertNotCalled(t, "Create")
	}
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("secreto"), bcrypt.MinCost)
	require.NoError(t, err)

	user := newUser("Real Betis", 4200, 2)
	user.Email = "pepe@example.com"
	user.PasswordHash = string(hash)

	t.Run("valid credentials", func(t *testing.T) {
		d := newTestDeps()
		service := newTestUserService(d)

		d.users.On("GetByEmail", ctx, "pepe@example.com").Return(user, nil)
		d.offers.On("CountReceivedByOwner", ctx, user.ID, user.Name).Return(3, nil)

		session, err := service.Login(ctx, "PEPE@example.com", "secreto")
		require.NoError(t, err)
		assert.Equal(t, user.ID, session.UserID)
		assert.Equal(t, user.Equipo, session.Equipo)
		assert.Equal(t, int64(4200), session.Presupuesto)
		assert.True(t, session.HasOffers)
		d.uow.AssertNotCalled(t, "Commit")
		d.assertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		d := newTestDeps()
		service := newTestUserService(d)

		d.users.On("GetByEmail", ctx, "pepe@example.com").Return(user, nil)

		_, err := service.Login(ctx, "pepe@example.com", "otro")
		assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))
		d.assertExpectations(t)
	})

	t.Run("unknown email", func(t *testing.T) {
		d := newTestDeps()
		service := newTestUserService(d)

		d.users.On("GetByEmail", ctx, "nadie@example.com").Return(nil, nil)

		_, err := service.Login(ctx, "nadie@example.com", "secreto")
		assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))
		d.assertExpectations(t)
	})

	t.Run("token signing failure", func(t *testing.T) {
		d := newTestDeps()
		service := NewUserService(d.factory, stubTokenIssuer{err: errors.New("no key")}, DefaultSignupDefaults(), bcrypt.MinCost, nil)

		d.users.On("GetByEmail", ctx, "pepe@example.com").Return(user, nil)
		d.offers.On("CountReceivedByOwner", ctx, user.ID, user.Name).Return(0, nil)

		_, err := service.Login(ctx, "pepe@example.com", "secreto")
		assert.Equal(t, domain.CodePersistenceFailure, domain.CodeOf(err))
		d.assertExpectations(t)
	})
}

func TestUserService_SetBudget(t *testing.T) {
	ctx := context.Background()

	t.Run("overwrites the budget", func(t *testing.T) {
		d := newTestDeps()
		service := newTestUserService(d)
		user := newUser("Real Betis", 6000, 0)

		d.users.On("GetByID", ctx, user.ID).Return(user, nil)
		d.users.On("UpdateBudget", ctx, user.ID, int64(1500)).Return(nil)
		d.expectCommit()

		updated, err := service.SetBudget(ctx, user.ID, 1500)
		require.NoError(t, err)
		assert.Equal(t, int64(1500), updated.Presupuesto)
		d.assertExpectations(t)
	})

	t.Run("negative budget is stored as given", func(t *testing.T) {
		d := newTestDeps()
		service := newTestUserService(d)
		user := newUser("Real Betis", 6000, 0)

		d.users.On("GetByID", ctx, user.ID).Return(user, nil)
		d.users.On("UpdateBudget", ctx, user.ID, int64(-400)).Return(nil)
		d.expectCommit()

		updated, err := service.SetBudget(ctx, user.ID, -400)
		require.NoError(t, err)
		assert.Equal(t, int64(-400), updated.Presupuesto)
		d.assertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		d := newTestDeps()
		service := newTestUserService(d)
		missing := uuid.New()

		d.users.On("GetByID", ctx, missing).Return(nil, nil)

		_, err := service.SetBudget(ctx, missing, 10)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		d.assertExpectations(t)
	})
}

func TestUserService_ListUsers(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps()
	service := newTestUserService(d)

	users := []*domain.User{newUser("Real Betis", 0, 0), newUser("Sevilla", 0, 0)}
	d.users.On("GetAll", ctx).Return(users, nil)

	got, err := service.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, users, got)
	d.assertExpectations(t)
}
