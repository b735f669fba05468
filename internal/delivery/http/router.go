package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/IsmaelSWO/league-backend/internal/metrics"
	custommiddleware "github.com/IsmaelSWO/league-backend/internal/middleware"
)

// RouterConfig holds all dependencies for routing
type RouterConfig struct {
	AuthHandler    *AuthHandler
	UserHandler    *UserHandler
	PlayerHandler  *PlayerHandler
	OfferHandler   *OfferHandler
	MessageHandler *MessageHandler
	Auth           *custommiddleware.JWTIssuer
	// AuthLimiter throttles signup and login; nil disables it
	AuthLimiter *custommiddleware.RateLimiter
}

// NewServer creates an echo instance with the league error writer installed
func NewServer() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = HTTPErrorHandler
	return e
}

// SetupRoutes configures all HTTP routes
func SetupRoutes(e *echo.Echo, config *RouterConfig) {
	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := log.WithFields(log.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"remote_ip":  v.RemoteIP,
				"request_id": v.RequestID,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Warn("Request failed")
				return nil
			}
			entry.Info("Request handled")
			return nil
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			"X-Requested-With",
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
		},
	}))
	e.Use(metrics.Middleware())

	auth := config.Auth.AuthMiddleware
	limit := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	if config.AuthLimiter != nil {
		limit = config.AuthLimiter.Middleware
	}

	// API group
	api := e.Group("/api")

	players := api.Group("/players")
	{
		players.GET("/get/:pid", config.PlayerHandler.GetPlayer)
		players.GET("/user/:uid", config.PlayerHandler.ListPlayersByUser)
		players.GET("/mercado", config.PlayerHandler.ListMarketPlayers)
		players.GET("/top/ofertasrealizadas", config.PlayerHandler.ListPlayersWithOffers)

		players.POST("/:pid", config.PlayerHandler.CreatePlayer, auth)
		players.POST("/discarded/:uid", config.PlayerHandler.CreateDiscardedPlayer, auth)
		players.PATCH("/transferible/:pid", config.PlayerHandler.UpdatePlayerTransferible, auth)
		players.PATCH("/:pid", config.PlayerHandler.UpdatePlayerClause, auth)
		players.DELETE("/:pid", config.PlayerHandler.DeletePlayer, auth)
		players.DELETE("/delete/:pid/:uid", config.PlayerHandler.DeleteDiscardedPlayer, auth)
	}

	ofertas := api.Group("/ofertas")
	{
		ofertas.GET("/mercado", config.OfferHandler.ListMarketOffers)
		ofertas.GET("/:oid", config.OfferHandler.GetOffer)
		ofertas.GET("/player/:pid", config.OfferHandler.ListOffersByPlayer)
		ofertas.GET("/get/receivedOffers/:uid", config.OfferHandler.HasReceivedOffers)

		ofertas.GET("/get/:q/:pid", config.OfferHandler.CheckOfferBudget, auth)
		ofertas.POST("/:clause/:q", config.OfferHandler.CreateOffer, auth)
		ofertas.PATCH("/:oid/:clause/:q/:pid", config.OfferHandler.UpdateOfferAmount, auth)
		ofertas.DELETE("/:oid", config.OfferHandler.DeleteOffer, auth)
	}

	users := api.Group("/users")
	{
		users.GET("", config.UserHandler.ListUsers)
		users.POST("/signup", config.AuthHandler.Signup, limit)
		users.POST("/login", config.AuthHandler.Login, limit)

		users.PATCH("/pagarclausula/:uid", config.UserHandler.SetBudget, auth)
	}

	messages := api.Group("/messages")
	{
		messages.GET("/get", config.MessageHandler.ListMessages)

		messages.POST("/post", config.MessageHandler.PostMessage, auth)
	}
}
