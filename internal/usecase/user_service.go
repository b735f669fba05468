package usecase

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/IsmaelSWO/league-backend/internal/domain"
)

const (
	msgInvalidSignup     = "Credenciales inválidas, por favor, revíselas."
	msgUserAlreadyExists = "El usuario ya existe, inicie sesión en su lugar."
	msgSignupFailed      = "El registro del usuario falló, inténtelo de nuevo."
	msgLoginFailed       = "El inicio de sesión falló, inténtelo de nuevo."
	msgWrongCredentials  = "Credenciales incorrectas, no se pudo iniciar sesión."
	msgUserListFailed    = "Algo falló en la obtención de usuarios, inténtelo de nuevo"
	msgUserUpdateFailed  = "Algo fue mal, no se pudo actualizar el usuario."
	minPasswordLength    = 6
)

// SignupDefaults are the values every new account starts with
type SignupDefaults struct {
	Equipo      string
	Division    string
	Presupuesto int64
	Image       string
}

// DefaultSignupDefaults returns the league's starting values for a new manager
func DefaultSignupDefaults() SignupDefaults {
	return SignupDefaults{
		Equipo:      "Equipo no asignado",
		Division:    "Cuarta",
		Presupuesto: 6000,
		Image:       "https://imgur.com/2FS8g0d.png",
	}
}

type userService struct {
	uowFactory domain.UnitOfWorkFactory
	tokens     domain.TokenIssuer
	defaults   SignupDefaults
	bcryptCost int
	now        Clock
}

// NewUserService creates a new user service
func NewUserService(uowFactory domain.UnitOfWorkFactory, tokens domain.TokenIssuer, defaults SignupDefaults, bcryptCost int, now Clock) domain.UserService {
	if now == nil {
		now = systemClock
	}
	if bcryptCost == 0 {
		bcryptCost = 12
	}
	return &userService{
		uowFactory: uowFactory,
		tokens:     tokens,
		defaults:   defaults,
		bcryptCost: bcryptCost,
		now:        now,
	}
}

// Signup registers a new manager with the default team, division and budget and logs them in
func (s *userService) Signup(ctx context.Context, input domain.SignupInput) (*domain.Session, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || len(input.Password) < minPasswordLength {
		return nil, validationError(msgInvalidSignup)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, validationError(msgInvalidSignup)
	}

	uow, err := begin(ctx, s.uowFactory)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback() // No-op if already committed

	existing, err := uow.UserRepository().GetByEmail(ctx, email)
	if err != nil {
		return nil, persistenceError("signup", msgSignupFailed, err)
	}
	if existing != nil {
		return nil, validationError(msgUserAlreadyExists)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, persistenceError("signup", "No se pudo crear al usuario, inténtelo de nuevo.", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Name:         name,
		Equipo:       s.defaults.Equipo,
		Email:        email,
		PasswordHash: string(hash),
		Image:        s.defaults.Image,
		Division:     s.defaults.Division,
		Presupuesto:  s.defaults.Presupuesto,
		Players:      []uuid.UUID{},
		CreatedAt:    s.now().UTC().Truncate(time.Microsecond),
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, persistenceError("signup", msgSignupFailed, err)
	}

	// a new account owns no players, so it cannot have received offers yet
	session, err := s.session(user, false)
	if err != nil {
		return nil, persistenceError("signup", msgSignupFailed, err)
	}

	if err := commit("signup", uow, msgSignupFailed); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("User signed up")

	return session, nil
}

// Login verifies the credentials and issues a new token
func (s *userService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	uow, err := begin(ctx, s.uowFactory)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByEmail(ctx, email)
	if err != nil {
		return nil, persistenceError("login", msgLoginFailed, err)
	}
	if user == nil {
		return nil, domain.NewError(domain.CodeInvalidCredentials, msgWrongCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.WithField("user_id", user.ID).Info("Login rejected: wrong password")
		return nil, domain.NewError(domain.CodeInvalidCredentials, msgWrongCredentials)
	}

	received, err := uow.OfferRepository().CountReceivedByOwner(ctx, user.ID, user.Name)
	if err != nil {
		return nil, persistenceError("login", msgPlayerListFailed, err)
	}

	session, err := s.session(user, received > 0)
	if err != nil {
		return nil, persistenceError("login", msgLoginFailed, err)
	}

	log.WithField("user_id", user.ID).Info("User logged in")
	return session, nil
}

// ListUsers returns every manager
func (s *userService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	uow, err := begin(ctx, s.uowFactory)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	users, err := uow.UserRepository().GetAll(ctx)
	if err != nil {
		return nil, persistenceError("list_users", msgUserListFailed, err)
	}
	return users, nil
}

// SetBudget overwrites a manager's budget, as done after paying a release clause.
// The value is stored as given, negative included.
func (s *userService) SetBudget(ctx context.Context, userID uuid.UUID, presupuesto int64) (*domain.User, error) {
	uow, err := begin(ctx, s.uowFactory)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback() // No-op if already committed

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return nil, persistenceError("set_budget", msgUserUpdateFailed, err)
	}
	if user == nil {
		return nil, notFound(msgUserNotFound)
	}

	if err := uow.UserRepository().UpdateBudget(ctx, user.ID, presupuesto); err != nil {
		return nil, persistenceError("set_budget", "Algo fue mal, no se pudo guardar la información.", err)
	}

	if err := commit("set_budget", uow, msgUserUpdateFailed); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id": user.ID,
		"from":    user.Presupuesto,
		"to":      presupuesto,
	}).Info("User budget updated")

	user.Presupuesto = presupuesto
	return user, nil
}

func (s *userService) session(user *domain.User, hasOffers bool) (*domain.Session, error) {
	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &domain.Session{
		UserID:      user.ID,
		Email:       user.Email,
		Token:       token,
		Presupuesto: user.Presupuesto,
		Name:        user.Name,
		Equipo:      user.Equipo,
		Image:       user.Image,
		HasOffers:   hasOffers,
	}, nil
}
