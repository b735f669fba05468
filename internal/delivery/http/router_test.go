package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IsmaelSWO/league-backend/internal/domain"
	custommiddleware "github.com/IsmaelSWO/league-backend/internal/middleware"
)

type fakeOffers struct {
	domain.OfferService
	created  *domain.CreateOfferInput
	updated  int64
	checked  *int64
	received bool
	err      error
}

func (f *fakeOffers) CreateOffer(ctx context.Context, input domain.CreateOfferInput) (*domain.Offer, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = &input
	return &domain.Offer{ID: uuid.New(), Cantidad: input.Cantidad, OfertanteID: input.ActorID, PlayerID: input.PlayerID}, nil
}

func (f *fakeOffers) UpdateOfferAmount(ctx context.Context, actorID, offerID uuid.UUID, cantidad int64) (*domain.Offer, error) {
	f.updated = cantidad
	return &domain.Offer{ID: offerID, Cantidad: cantidad, OfertanteID: actorID}, nil
}

func (f *fakeOffers) CheckOfferBudget(ctx context.Context, actorID uuid.UUID, cantidad int64, playerID uuid.UUID) error {
	f.checked = &cantidad
	return f.err
}

func (f *fakeOffers) HasReceivedOffers(ctx context.Context, userID uuid.UUID) (bool, error) {
	return f.received, nil
}

func (f *fakeOffers) ListMarketOffers(ctx context.Context) ([]*domain.Offer, error) {
	return []*domain.Offer{}, nil
}

type fakePlayers struct {
	domain.PlayerService
	action    domain.ActionType
	discarded *domain.CreateDiscardedPlayerInput
	err       error
}

func (f *fakePlayers) DeletePlayer(ctx context.Context, actorID, playerID uuid.UUID, action domain.ActionType) error {
	f.action = action
	return f.err
}

func (f *fakePlayers) CreateDiscardedPlayer(ctx context.Context, input domain.CreateDiscardedPlayerInput) (*domain.Player, error) {
	f.discarded = &input
	return &domain.Player{ID: uuid.New(), Title: input.Title, OwnerDiscard: &input.OwnerID, DiscardExpiresDate: input.DiscardExpiresDate}, nil
}

type fakeUsers struct {
	domain.UserService
}

func (f *fakeUsers) Signup(ctx context.Context, input domain.SignupInput) (*domain.Session, error) {
	return &domain.Session{UserID: uuid.New(), Email: input.Email, Token: "token", Presupuesto: 6000, Name: input.Name}, nil
}

func (f *fakeUsers) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	return nil, domain.NewError(domain.CodeInvalidCredentials, "Credenciales incorrectas, no se pudo iniciar sesión.")
}

type fakeMessages struct {
	domain.MessageService
}

type testServer struct {
	e       *echo.Echo
	issuer  *custommiddleware.JWTIssuer
	offers  *fakeOffers
	players *fakePlayers
	now     time.Time
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	s := &testServer{
		e:       NewServer(),
		issuer:  custommiddleware.NewJWTIssuer("test-secret", time.Hour),
		offers:  &fakeOffers{},
		players: &fakePlayers{},
		now:     time.Date(2024, time.July, 16, 12, 0, 0, 0, time.UTC),
	}

	SetupRoutes(s.e, &RouterConfig{
		AuthHandler:    NewAuthHandler(&fakeUsers{}),
		UserHandler:    NewUserHandler(&fakeUsers{}),
		PlayerHandler:  NewPlayerHandler(s.players, 72*time.Hour, func() time.Time { return s.now }),
		OfferHandler:   NewOfferHandler(s.offers),
		MessageHandler: NewMessageHandler(&fakeMessages{}),
		Auth:           s.issuer,
		AuthLimiter:    custommiddleware.NewRateLimiter(0.001, 2),
	})
	return s
}

func (s *testServer) do(t *testing.T, method, path, body string, userID uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if userID != uuid.Nil {
		token, err := s.issuer.Issue(userID, "pepe@example.com")
		require.NoError(t, err)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func TestRouter_UnknownRoute(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/nada", "", uuid.Nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, msgRouteNotFound, decodeMessage(t, rec))

	rec = s.do(t, http.MethodPut, "/api/ofertas/mercado", "", uuid.Nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, msgRouteNotFound, decodeMessage(t, rec))
}

func TestRouter_ProtectedRouteRequiresToken(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodDelete, "/api/ofertas/"+uuid.NewString(), "", uuid.Nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotEmpty(t, decodeMessage(t, rec))
}

func TestRouter_CreateOffer(t *testing.T) {
	playerID := uuid.New()
	actorID := uuid.New()

	t.Run("path amount is stored", func(t *testing.T) {
		s := newTestServer(t)
		body := `{"cantidad": 5000, "playerId": "` + playerID.String() + `", "equipoOfertante": "Real Betis"}`

		rec := s.do(t, http.MethodPost, "/api/ofertas/9000/5000", body, actorID)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var resp struct {
			Oferta domain.Offer `json:"oferta"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int64(5000), resp.Oferta.Cantidad)
		assert.Equal(t, actorID, resp.Oferta.OfertanteID)
		assert.Equal(t, playerID, resp.Oferta.PlayerID)
		assert.Equal(t, "Real Betis", s.offers.created.EquipoOfertante)
	})

	t.Run("body amount disagrees with the path", func(t *testing.T) {
		s := newTestServer(t)
		body := `{"cantidad": 10, "playerId": "` + playerID.String() + `"}`

		rec := s.do(t, http.MethodPost, "/api/ofertas/9000/5000", body, actorID)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, msgAmountMismatch, decodeMessage(t, rec))
		assert.Nil(t, s.offers.created)
	})

	t.Run("non-numeric amount", func(t *testing.T) {
		s := newTestServer(t)

		rec := s.do(t, http.MethodPost, "/api/ofertas/9000/mucho", `{"playerId": "`+playerID.String()+`"}`, actorID)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("amount beyond what a client can represent", func(t *testing.T) {
		s := newTestServer(t)

		rec := s.do(t, http.MethodPost, "/api/ofertas/9000/9223372036854775807", `{"playerId": "`+playerID.String()+`"}`, actorID)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, msgInvalidAmount, decodeMessage(t, rec))
		assert.Nil(t, s.offers.created)
	})

	t.Run("budget refusal keeps the historical status", func(t *testing.T) {
		s := newTestServer(t)
		s.offers.err = domain.NewError(domain.CodeInsufficientFunds, "Operación denegada. Su presupuesto es menor a la deuda acumulada")

		rec := s.do(t, http.MethodPost, "/api/ofertas/9000/5000", `{"playerId": "`+playerID.String()+`"}`, actorID)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Operación denegada. Su presupuesto es menor a la deuda acumulada", decodeMessage(t, rec))
	})
}

func TestRouter_UpdateOfferAmount(t *testing.T) {
	s := newTestServer(t)
	path := "/api/ofertas/" + uuid.NewString() + "/9000/700/" + uuid.NewString()

	rec := s.do(t, http.MethodPatch, path, "", uuid.New())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, int64(700), s.offers.updated)
}

func TestRouter_CheckOfferBudget(t *testing.T) {
	actorID := uuid.New()
	path := func(q string) string { return "/api/ofertas/get/" + q + "/" + uuid.NewString() }

	t.Run("zero is a valid dry run", func(t *testing.T) {
		s := newTestServer(t)

		rec := s.do(t, http.MethodGet, path("0"), "", actorID)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, msgDone, decodeMessage(t, rec))
		require.NotNil(t, s.offers.checked)
		assert.Equal(t, int64(0), *s.offers.checked)
	})

	t.Run("affordable amount", func(t *testing.T) {
		s := newTestServer(t)

		rec := s.do(t, http.MethodGet, path("1500"), "", actorID)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(1500), *s.offers.checked)
	})

	t.Run("over budget", func(t *testing.T) {
		s := newTestServer(t)
		s.offers.err = domain.NewError(domain.CodeInsufficientFunds, "Operación denegada. Su presupuesto es menor a la deuda acumulada")

		rec := s.do(t, http.MethodGet, path("7000"), "", actorID)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("negative amount", func(t *testing.T) {
		s := newTestServer(t)

		rec := s.do(t, http.MethodGet, path("-1"), "", actorID)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, msgInvalidCheckQuery, decodeMessage(t, rec))
		assert.Nil(t, s.offers.checked)
	})

	t.Run("requires a token", func(t *testing.T) {
		s := newTestServer(t)

		rec := s.do(t, http.MethodGet, path("10"), "", uuid.Nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRouter_HasReceivedOffers(t *testing.T) {
	s := newTestServer(t)
	s.offers.received = true

	rec := s.do(t, http.MethodGet, "/api/ofertas/get/receivedOffers/"+uuid.NewString(), "", uuid.Nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "true", strings.TrimSpace(rec.Body.String()))
}

func TestRouter_MarketOffersIsStaticRoute(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/ofertas/mercado", "", uuid.Nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ofertas": []}`, rec.Body.String())
}

func TestRouter_DeletePlayer(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodDelete, "/api/players/"+uuid.NewString(), `{"actionType": "Clausulazo"}`, uuid.New())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, msgPlayerDeleted, decodeMessage(t, rec))
	assert.Equal(t, domain.ActionClausulazo, s.players.action)

	s.players.err = domain.NewError(domain.CodeClauseBuyoutWindowClosed, "cerrado")
	rec = s.do(t, http.MethodDelete, "/api/players/"+uuid.NewString(), `{"actionType": "Clausulazo"}`, uuid.New())
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "cerrado", decodeMessage(t, rec))
}

func TestRouter_CreateDiscardedPlayerDefaultsExpiry(t *testing.T) {
	s := newTestServer(t)
	ownerID := uuid.New()

	rec := s.do(t, http.MethodPost, "/api/players/discarded/"+ownerID.String(), `{"title": "Canales", "clausula": 900}`, ownerID)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	require.NotNil(t, s.players.discarded.DiscardExpiresDate)
	assert.Equal(t, s.now.Add(72*time.Hour).UnixMilli(), *s.players.discarded.DiscardExpiresDate)
	assert.Equal(t, ownerID, s.players.discarded.OwnerID)
}

func TestRouter_SignupAndLogin(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/users/signup", `{"name": "Pepe", "email": "pepe@example.com", "password": "secreto"}`, uuid.Nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var session domain.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	assert.Equal(t, "token", session.Token)
	assert.Equal(t, int64(6000), session.Presupuesto)
	assert.False(t, session.HasOffers)

	rec = s.do(t, http.MethodPost, "/api/users/login", `{"email": "pepe@example.com", "password": "otro"}`, uuid.Nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// the limiter allows a burst of two per client
	rec = s.do(t, http.MethodPost, "/api/users/login", `{"email": "pepe@example.com", "password": "otro"}`, uuid.Nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, decodeMessage(t, rec))
}

func TestStatusFor(t *testing.T) {
	tests := map[domain.Code]int{
		domain.CodeNotFound:                 http.StatusNotFound,
		domain.CodeValidationFailed:         http.StatusUnprocessableEntity,
		domain.CodeInsufficientFunds:        http.StatusNotFound,
		domain.CodeRosterLimitExceeded:      http.StatusNotFound,
		domain.CodeClauseDecreaseForbidden:  http.StatusUnauthorized,
		domain.CodeListingExceedsClause:     http.StatusUnauthorized,
		domain.CodeForbidden:                http.StatusUnauthorized,
		domain.CodeMarketClosed:             http.StatusNotFound,
		domain.CodeClauseBuyoutWindowClosed: http.StatusNotFound,
		domain.CodeInvalidCredentials:       http.StatusForbidden,
		domain.CodeUnauthenticated:          http.StatusUnauthorized,
		domain.CodePersistenceFailure:       http.StatusInternalServerError,
	}

	for code, want := range tests {
		assert.Equal(t, want, StatusFor(code), string(code))
	}
}

func TestHTTPErrorHandler_HidesCauses(t *testing.T) {
	e := NewServer()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	HTTPErrorHandler(domain.WrapPersistence("Algo fue mal, inténtelo de nuevo.", assert.AnError), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Algo fue mal, inténtelo de nuevo.", decodeMessage(t, rec))
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}
