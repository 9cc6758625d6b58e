package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/places-finder/internal/config"
	"github.com/places-finder/internal/delivery/http/handler"
	"github.com/places-finder/internal/delivery/http/middleware"
	apperrors "github.com/places-finder/internal/pkg/errors"
	"github.com/places-finder/internal/pkg/utils"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	stateHandler    *handler.StateHandler
	locationHandler *handler.LocationHandler
	filterHandler   *handler.FilterHandler
	nodeHandler     *handler.NodeHandler
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	stateHandler *handler.StateHandler,
	locationHandler *handler.LocationHandler,
	filterHandler *handler.FilterHandler,
	nodeHandler *handler.NodeHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "Places Finder",
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		IdleTimeout:           60 * time.Second,
		ErrorHandler:          customErrorHandler(logger),
		DisableStartupMessage: cfg.Server.Env != "development",
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		stateHandler:    stateHandler,
		locationHandler: locationHandler,
		filterHandler:   filterHandler,
		nodeHandler:     nodeHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := s.app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Get("/state", s.stateHandler.GetState)
	api.Get("/places", s.stateHandler.GetPlaces)

	// Location
	api.Get("/location", s.locationHandler.GetLocation)
	api.Post("/location/manual", s.locationHandler.SetManual)
	api.Post("/location/automatic", s.locationHandler.SetAutomatic)

	// Filters
	api.Get("/filters", s.filterHandler.GetFilters)
	api.Put("/filters", s.filterHandler.SetFilters)
	api.Post("/filters", s.filterHandler.AddFilter)
	api.Delete("/filters/:filter", s.filterHandler.RemoveFilter)

	// OSM nodes
	api.Get("/nodes/:id", s.nodeHandler.GetNode)
	api.Put("/nodes/:id", s.nodeHandler.UpdateNode)
}

// App - fiber приложение, используется в тестах
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if e, ok := err.(*fiber.Error); ok {
			return c.Status(e.Code).JSON(utils.ErrorResponse{
				Error: apperrors.New("HTTP_ERROR", e.Message, e.Code),
			})
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Error(err),
		)

		return utils.SendError(c, err)
	}
}
