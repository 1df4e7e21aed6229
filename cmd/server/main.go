package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appmenu "github.com/tableside/backend/internal/application/menu"
	appordering "github.com/tableside/backend/internal/application/ordering"
	apptenant "github.com/tableside/backend/internal/application/tenant"
	"github.com/tableside/backend/internal/domain/shared"
	"github.com/tableside/backend/internal/infrastructure/auth"
	"github.com/tableside/backend/internal/infrastructure/config"
	"github.com/tableside/backend/internal/infrastructure/event"
	"github.com/tableside/backend/internal/infrastructure/logger"
	"github.com/tableside/backend/internal/infrastructure/persistence"
	"github.com/tableside/backend/internal/infrastructure/qrcode"
	"github.com/tableside/backend/internal/interfaces/http/handler"
	"github.com/tableside/backend/internal/interfaces/http/router"
)

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
		_ = logger.Sync(log)
	}()

	log.Info("Starting Tableside Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	restaurantRepo := persistence.NewGormRestaurantRepository(db.DB)
	tableRepo := persistence.NewGormTableRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	menuItemRepo := persistence.NewGormMenuItemRepository(db.DB)
	addonGroupRepo := persistence.NewGormAddonGroupRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	numberGenerator := persistence.NewCounterNumberGenerator(db.DB)

	// Event bus: in-memory dispatch, with a Redis relay layered on top when
	// the deployment runs more than one instance. The relay keeps SSE
	// streams on every instance fed with events published on any of them.
	var eventBus shared.EventBus = event.NewInMemoryEventBus(log)
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		eventBus = event.NewRedisEventRelay(redisClient, eventBus, log)
		log.Info("Redis event relay enabled",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port),
		)
	}

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Initialize application services
	restaurantService := apptenant.NewRestaurantService(restaurantRepo, log)
	tableService := apptenant.NewTableService(tableRepo, restaurantRepo, qrcode.NewGenerator(), cfg.Storefront.MenuBaseURL, log)
	catalogService := appmenu.NewCatalogService(categoryRepo, menuItemRepo, addonGroupRepo)
	menuQueryService := appmenu.NewMenuQueryService(restaurantRepo, tableRepo, categoryRepo)
	orderService := appordering.NewOrderService(orderRepo, restaurantRepo, tableRepo, menuItemRepo, categoryRepo, numberGenerator, log)
	orderQueryService := appordering.NewOrderQueryService(orderRepo, restaurantRepo)

	// Inject event bus into services that publish events
	restaurantService.SetEventPublisher(eventBus)
	tableService.SetEventPublisher(eventBus)
	orderService.SetEventPublisher(eventBus)

	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize HTTP handlers
	streamHandler := handler.NewOrderStreamHandler(eventBus, cfg.Stream, log)
	if err := streamHandler.Start(); err != nil {
		log.Fatal("Failed to start order stream", zap.Error(err))
	}
	defer streamHandler.Stop()

	handlers := router.Handlers{
		System:     handler.NewSystemHandler(db),
		Restaurant: handler.NewRestaurantHandler(restaurantService, log),
		Table:      handler.NewTableHandler(tableService, cfg.Storefront, log),
		Catalog:    handler.NewCatalogHandler(catalogService, log),
		Order:      handler.NewOrderHandler(orderService, orderQueryService, log),
		Stream:     streamHandler,
		Storefront: handler.NewStorefrontHandler(menuQueryService, orderService, orderQueryService, log),
	}

	engine := router.Setup(cfg, jwtService, handlers, log)

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
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
