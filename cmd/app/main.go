package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/IsmaelSWO/league-backend/configs"
	"github.com/IsmaelSWO/league-backend/internal/database"
	httpdelivery "github.com/IsmaelSWO/league-backend/internal/delivery/http"
	"github.com/IsmaelSWO/league-backend/internal/delivery/ops"
	"github.com/IsmaelSWO/league-backend/internal/infra"
	"github.com/IsmaelSWO/league-backend/internal/middleware"
	"github.com/IsmaelSWO/league-backend/internal/repository"
	"github.com/IsmaelSWO/league-backend/internal/service"
	"github.com/IsmaelSWO/league-backend/internal/usecase"
	"github.com/IsmaelSWO/league-backend/internal/utils"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Warn(".env file not found, using environment variables")
	}

	// Load configuration
	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := infra.ConfigureLogging(cfg.Log); err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		handleMigrationCommand(cfg.Database.URL, os.Args[2:])
		return
	}

	ctx := context.Background()

	// Initialize database
	db, err := infra.NewDatabase(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if cfg.Database.MigrateOnBoot {
		if err := database.RunMigrations(cfg.Database.URL); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	uowFactory := repository.NewUnitOfWorkFactory(db)

	// Market windows and transfer rules
	policy, err := configs.BuildTransferPolicy(cfg.Market)
	if err != nil {
		log.Fatalf("Failed to build transfer policy: %v", err)
	}
	clock := utils.ClockIn(policy.Calendar.Location())

	issuer := middleware.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Initialize services
	offerService := usecase.NewOfferService(uowFactory, cfg.Market.RosterLimit, clock)
	playerService := usecase.NewPlayerService(uowFactory, policy, cfg.Market.RosterLimit, clock)
	userService := usecase.NewUserService(uowFactory, issuer, usecase.SignupDefaults{
		Equipo:      cfg.Signup.Equipo,
		Division:    cfg.Signup.Division,
		Presupuesto: cfg.Signup.Presupuesto,
		Image:       cfg.Signup.Image,
	}, cfg.Auth.BcryptCost, clock)
	messageService := usecase.NewMessageService(uowFactory, clock)

	stop := make(chan struct{})

	routerConfig := &httpdelivery.RouterConfig{
		AuthHandler:    httpdelivery.NewAuthHandler(userService),
		UserHandler:    httpdelivery.NewUserHandler(userService),
		PlayerHandler:  httpdelivery.NewPlayerHandler(playerService, cfg.Sweeper.DiscardTTL, clock),
		OfferHandler:   httpdelivery.NewOfferHandler(offerService),
		MessageHandler: httpdelivery.NewMessageHandler(messageService),
		Auth:           issuer,
	}
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		limiter.StartCleanup(10*time.Minute, stop)
		routerConfig.AuthLimiter = limiter
	}

	e := httpdelivery.NewServer()
	httpdelivery.SetupRoutes(e, routerConfig)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	opsSrv := &http.Server{
		Addr:         ":" + cfg.Ops.Port,
		Handler:      ops.NewRouter(db),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// Discarded players expire on a schedule
	scheduler := infra.NewScheduler(cron.WithLocation(policy.Calendar.Location()))
	if cfg.Sweeper.Enabled {
		sweeper := service.NewDiscardSweeperService(playerService, cfg.Sweeper.Timeout)
		if err := scheduler.Register("discard-sweeper", cfg.Sweeper.Schedule, sweeper); err != nil {
			log.Fatalf("Failed to register discard sweeper: %v", err)
		}
	}
	scheduler.Start()

	go func() {
		log.WithField("port", cfg.Ops.Port).Info("Ops server listening")
		if err := opsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Ops server failed: %v", err)
		}
	}()

	go func() {
		log.WithFields(log.Fields{
			"port": cfg.Server.Port,
			"env":  cfg.Server.Env,
		}).Info("League API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	close(stop)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	scheduler.Stop(shutdownCtx)

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}
	if err := opsSrv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Ops server forced to shutdown")
	}

	log.Info("Server exited")
}

func handleMigrationCommand(databaseURL string, args []string) {
	if len(args) == 0 {
		log.Fatal("Usage: app migrate [up|down [n]|status]")
	}

	switch args[0] {
	case "up":
		if err := database.RunMigrations(databaseURL); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
	case "down":
		steps := 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				log.Fatalf("Invalid step count %q", args[1])
			}
			steps = n
		}
		if err := database.MigrateDown(databaseURL, steps); err != nil {
			log.Fatalf("Rollback failed: %v", err)
		}
	case "status":
		if err := database.MigrateStatus(databaseURL); err != nil {
			log.Fatalf("Failed to read migration status: %v", err)
		}
	default:
		log.Fatalf("Unknown migrate command %q", args[0])
	}
}
