package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iliyamo/user-dashboard/internal/config"     // env configuration
	"github.com/iliyamo/user-dashboard/internal/database"   // MySQL pool and schema
	"github.com/iliyamo/user-dashboard/internal/handler"    // HTTP handlers
	"github.com/iliyamo/user-dashboard/internal/logging"    // slog setup
	"github.com/iliyamo/user-dashboard/internal/queue"      // lifecycle events
	"github.com/iliyamo/user-dashboard/internal/repository" // lifecycle store
	"github.com/iliyamo/user-dashboard/internal/router"     // echo wiring
	"github.com/iliyamo/user-dashboard/internal/service"    // user operations
	"github.com/iliyamo/user-dashboard/internal/utils"      // password hashing
	"github.com/iliyamo/user-dashboard/internal/validation" // request validation
)

func main() {
	cfg := config.Load() // Load environment config
	logger := logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.DBMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			logger.Error("migrate schema", "err", err)
			os.Exit(1)
		}
	}

	rdb := config.NewRedisClient(ctx) // nil when Redis is unreachable
	if rdb == nil {
		logger.Warn("redis unavailable; rate limiting disabled")
	} else {
		defer rdb.Close()
	}

	var events service.EventPublisher = queue.Discard{}
	if cfg.EventsEnabled {
		events = queue.NewPublisher(cfg.AMQPURL)
		consumer := queue.NewAuditConsumer(cfg.AMQPURL, cfg.EventsLogPath)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("audit consumer stopped", "err", err)
			}
		}()
	}

	store := repository.NewUserRepo(db)
	users := service.NewUserService(store, events, validation.New(cfg.PhoneRegion), utils.NewHasher(cfg.BcryptCost))

	e := router.New(router.Deps{
		Users:     handler.NewUserHandler(users),
		Health:    &handler.HealthHandler{DB: store},
		Logger:    logger,
		Hosts:     cfg.AllowedHosts,
		RateLimit: config.LoadRateLimitConfig(),
		Redis:     rdb,
	})

	addr := ":" + cfg.Port
	go func() {
		logger.Info("listening", "addr", addr, "env", cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
