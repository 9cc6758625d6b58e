package main

// @title Places Finder API
// @version 1.0.0
// @description Поиск мест вокруг пользователя по тегам OpenStreetMap через Overpass.
// @description
// @description Основные возможности:
// @description - Автоматическая локация из потока позиций устройства или ручные координаты
// @description - Набор фильтров вида namespace:value, сохраняется между запусками
// @description - Список мест пересчитывается при смене локации или фильтров
// @description - Чтение и обновление узлов OSM

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/places-finder/docs/swagger"
	"github.com/places-finder/internal/config"
	httpDelivery "github.com/places-finder/internal/delivery/http"
	"github.com/places-finder/internal/delivery/http/handler"
	"github.com/places-finder/internal/domain"
	"github.com/places-finder/internal/domain/repository"
	"github.com/places-finder/internal/location"
	"github.com/places-finder/internal/osmapi"
	"github.com/places-finder/internal/overpass"
	"github.com/places-finder/internal/pkg/logger"
	"github.com/places-finder/internal/repository/cache"
	"github.com/places-finder/internal/repository/postgres"
	"github.com/places-finder/internal/repository/preferences"
	redisRepo "github.com/places-finder/internal/repository/redis"
	"github.com/places-finder/internal/telemetry"
	"github.com/places-finder/internal/usecase"
	"github.com/places-finder/internal/worker"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Places Finder")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("store_backend", cfg.Store.Backend),
		zap.Bool("position_stream", cfg.Positioning.Enabled),
		zap.Bool("sequence_guard", cfg.Places.SequenceGuard),
	)

	telemetry.InitMetrics()

	// 3. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	// 4. Preferences storage
	var kv repository.KVStore
	switch cfg.Store.Backend {
	case config.StoreBackendPostgres:
		db, err := postgres.New(&cfg.Database, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close PostgreSQL connection", zap.Error(err))
			}
		}()

		if err := db.Health(ctx); err != nil {
			log.Fatal("PostgreSQL health check failed", zap.Error(err))
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			log.Fatal("Failed to prepare settings table", zap.Error(err))
		}
		kv = postgres.NewSettingsRepository(db)
	default:
		kv = cache.NewKVRepository(redisClient)
	}

	prefs := preferences.NewRepository(kv, log)
	log.Info("Preferences store initialized", zap.String("backend", cfg.Store.Backend))

	// 5. Remote services
	placesClient := overpass.NewClient(&cfg.Overpass, log)
	nodeClient := osmapi.NewClient(&cfg.OSM, log)

	// 6. Location provider
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	watcher := redisRepo.NewPositionWatcher(streamRepo, &cfg.Positioning, log)

	initial := domain.Location{
		Latitude:  cfg.Location.DefaultLat,
		Longitude: cfg.Location.DefaultLng,
	}
	manual, hasManual := prefs.LoadManualLocation(ctx)
	if hasManual {
		initial = manual
		log.Info("Restored manual location",
			zap.Float64("lat", manual.Latitude),
			zap.Float64("lng", manual.Longitude))
	}

	provider := location.NewProvider(watcher, location.Options{
		Initial:      initial,
		PreferManual: hasManual,
	}, log)

	// 7. Controller
	controller := usecase.NewAppController(
		provider,
		placesClient,
		prefs,
		prefs,
		usecase.ControllerOptions{
			Margin:        cfg.Overpass.Margin,
			SequenceGuard: cfg.Places.SequenceGuard,
		},
		log,
	)

	workers := worker.NewWorkerManager(log)
	workers.Register(controller)

	// 8. HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		handler.NewStateHandler(controller, log),
		handler.NewLocationHandler(controller, log),
		handler.NewFilterHandler(controller, log),
		handler.NewNodeHandler(nodeClient, log),
	)

	// 9. Run until signal or failure
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		if err := workers.Start(gctx); err != nil {
			return err
		}
		select {
		case err := <-workers.Failures():
			return err
		case <-gctx.Done():
			return nil
		}
	})

	g.Go(func() error {
		return server.Start()
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		if err := server.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("server shutdown: %w", err))
		}
		if err := workers.Stop(); err != nil {
			errs = append(errs, err)
		}
		return errors.Join(errs...)
	})

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	if err := g.Wait(); err != nil {
		log.Error("Stopped with error", zap.Error(err))
		return
	}

	log.Info("Server stopped successfully")
}
