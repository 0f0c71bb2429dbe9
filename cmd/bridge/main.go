package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	appbridge "github.com/openmarket/econbridge/internal/application/bridge"
	"github.com/openmarket/econbridge/internal/domain/bridge"
	"github.com/openmarket/econbridge/internal/domain/shared"
	"github.com/openmarket/econbridge/internal/infrastructure/cache"
	"github.com/openmarket/econbridge/internal/infrastructure/config"
	"github.com/openmarket/econbridge/internal/infrastructure/event"
	"github.com/openmarket/econbridge/internal/infrastructure/graph"
	"github.com/openmarket/econbridge/internal/infrastructure/logger"
	"github.com/openmarket/econbridge/internal/infrastructure/persistence"
	"github.com/openmarket/econbridge/internal/interfaces/http/handler"
	"github.com/openmarket/econbridge/internal/interfaces/http/middleware"
	"github.com/openmarket/econbridge/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting econbridge",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Mapping store: durable sqlite in production, memory for development
	var mappings bridge.MappingStore
	var pinger func() error
	if cfg.Store.Backend == "sqlite" {
		gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
		db, err := persistence.NewDatabaseWithLogger(cfg.Store.Path, gormLog)
		if err != nil {
			log.Fatal("Failed to open mapping database", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Error closing database", zap.Error(err))
			}
		}()
		mappings = persistence.NewGormMappingStore(db.DB)
		pinger = db.Ping
		log.Info("Mapping database opened", zap.String("path", cfg.Store.Path))
	} else {
		mappings = persistence.NewMemoryMappingStore()
		log.Warn("Using in-memory mapping store, mappings will not survive restarts")
	}

	pending := persistence.NewMemoryPendingSet()

	// Graph client: real endpoint when configured, stub otherwise
	var graphClient bridge.GraphClient
	if cfg.Graph.Endpoint != "" {
		client, err := graph.NewClient(&graph.Config{
			Endpoint:       cfg.Graph.Endpoint,
			TimeoutSeconds: cfg.Graph.TimeoutSeconds,
			AuthToken:      cfg.Graph.AuthToken,
		}, log)
		if err != nil {
			log.Fatal("Failed to create graph client", zap.Error(err))
		}
		graphClient = client
		log.Info("Graph client configured", zap.String("endpoint", cfg.Graph.Endpoint))
	} else {
		graphClient = graph.NewStubGraphClient()
		log.Warn("No graph endpoint configured, using in-memory stub client")
	}

	// Reconciliation engine
	reconciler := appbridge.NewReconciler(mappings, pending, graphClient, log)

	// Idempotency store for event deduplication
	var idempotencyStore shared.IdempotencyStore
	if cfg.Event.IdempotencyBackend == "redis" {
		store, err := cache.NewRedisIdempotencyStore(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		idempotencyStore = store
		log.Info("Redis idempotency store connected", zap.String("addr", cfg.Redis.Addr()))
	} else {
		idempotencyStore = cache.NewInMemoryIdempotencyStore()
	}

	idempotencyConfig := shared.IdempotencyConfig{
		TTL:     cfg.Event.IdempotencyTTL,
		Enabled: cfg.Event.IdempotencyEnabled,
	}

	// Event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)

	listingHandler := appbridge.NewListingCreatedHandler(reconciler, log)
	prerequisiteHandler := appbridge.NewPrerequisiteApprovedHandler(reconciler, log)

	eventBus.Subscribe(event.NewIdempotentHandler(listingHandler, idempotencyStore, log).WithConfig(idempotencyConfig))
	eventBus.Subscribe(event.NewIdempotentHandler(prerequisiteHandler, idempotencyStore, log).WithConfig(idempotencyConfig))

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// HTTP server
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	engine.Use(
		logger.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	r := router.NewRouter(engine)
	r.Register(handler.NewMarketplaceHandler(eventBus, log)).
		Register(handler.NewBridgeHandler(reconciler, mappings, log)).
		Register(handler.NewSystemHandler(cfg.App.Name, version, pinger))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
