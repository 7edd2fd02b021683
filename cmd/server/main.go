package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/studio-booking/internal/config"
	"github.com/iliyamo/studio-booking/internal/database"
	"github.com/iliyamo/studio-booking/internal/handler"
	"github.com/iliyamo/studio-booking/internal/jobs"
	"github.com/iliyamo/studio-booking/internal/middleware"
	"github.com/iliyamo/studio-booking/internal/queue"
	"github.com/iliyamo/studio-booking/internal/repository"
	"github.com/iliyamo/studio-booking/internal/router"
	"github.com/iliyamo/studio-booking/internal/service"
	"github.com/iliyamo/studio-booking/internal/utils"
)

func main() {
	_ = godotenv.Load() // .env is optional outside development

	cfg := config.Load()
	logger, err := utils.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, database.Conn{
		User: cfg.DBUser, Pass: cfg.DBPass,
		Host: cfg.DBHost, Port: cfg.DBPort,
		Name: cfg.DBName,
	})
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		logger.Fatal("migrate failed", zap.Error(err))
	}
	if cfg.Seed {
		opt := database.SeedOptions{AdminEmail: cfg.AdminEmail, AdminPassword: cfg.AdminPassword, BcryptCost: cfg.BcryptCost}
		if err := database.Seed(ctx, db, opt); err != nil {
			logger.Fatal("seed failed", zap.Error(err))
		}
		logger.Info("seed applied", zap.String("admin", cfg.AdminEmail))
	}

	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()
	jobsCfg := config.LoadJobsConfig()
	queueCfg := config.LoadQueueConfig()

	rdb := config.NewRedisClient() // nil when Redis is unreachable
	if rdb == nil {
		logger.Warn("redis unavailable; cache and rate limiting disabled")
	} else {
		defer rdb.Close()
	}

	// Repositories
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	rooms := repository.NewRoomRepo(db)
	slots := repository.NewSlotRepo(db)
	content := repository.NewContentRepo(db)
	leads := repository.NewLeadRepo(db)

	var publisher handler.LeadPublisher
	if queueCfg.Enabled {
		publisher = service.NewLeadPublisher(queueCfg, logger)
		go func() {
			if err := queue.StartLeadConsumer(ctx, queueCfg, logger); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("lead consumer stopped", zap.Error(err))
			}
		}()
	}

	if jobsCfg.Enabled {
		c, err := jobs.NewRetention(slots, leads, jobsCfg, cfg.Location, logger).Start()
		if err != nil {
			logger.Fatal("retention job", zap.Error(err))
		}
		defer c.Stop()
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(logger))
	if len(cfg.CORSOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: cfg.CORSOrigins}))
	} else {
		e.Use(echomw.CORS())
	}

	router.Register(e, router.Handlers{
		Auth:    handler.NewAuthHandler(cfg, users, tokens, logger),
		Rooms:   handler.NewRoomHandler(rooms, logger),
		Slots:   handler.NewSlotHandler(slots, rooms, cfg.Location, logger),
		Content: handler.NewContentHandler(content, logger),
		Leads:   handler.NewLeadHandler(leads, publisher, logger),
		DB:      db,
	}, router.Deps{
		JWTSecret: cfg.JWTSecret,
		Redis:     rdb,
		Cache:     cacheCfg,
		RateLimit: rlCfg,
		Log:       logger,
	})

	addr := ":" + cfg.Port
	go func() {
		logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
