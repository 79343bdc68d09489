package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/sportsevents/sports-events-api/config"
	"github.com/sportsevents/sports-events-api/internal/api/handlers"
	"github.com/sportsevents/sports-events-api/internal/api/middleware"
	"github.com/sportsevents/sports-events-api/internal/service"
	"github.com/sportsevents/sports-events-api/internal/tracing"
)

// Services bundles the service layer for the HTTP server
type Services struct {
	Categories service.CategoryService
	Venues     service.VenueService
	Events     service.EventService
	Users      service.UserService
	Bookings   service.BookingService
}

// Server represents the HTTP server
type Server struct {
	config     config.Config
	router     *gin.Engine
	httpServer *http.Server
	services   Services
	tracer     tracing.Tracer
}

// NewServer creates a new HTTP server
func NewServer(cfg config.Config, services Services, tracer tracing.Tracer) *Server {
	server := &Server{
		config:   cfg,
		services: services,
		tracer:   tracer,
	}

	server.router = server.setupRouter()

	server.httpServer = &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      server.router,
		ReadTimeout:  cfg.ServerTimeout,
		WriteTimeout: cfg.ServerTimeout,
	}

	return server
}

// setupRouter configures the HTTP router
func (s *Server) setupRouter() *gin.Engine {
	if s.config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())

	if app := s.tracer.Application(); app != nil {
		router.Use(nrgin.Middleware(app))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	handlers.NewCategoryHandler(s.services.Categories).RegisterRoutes(api)
	handlers.NewVenueHandler(s.services.Venues).RegisterRoutes(api)
	handlers.NewEventHandler(s.services.Events).RegisterRoutes(api)
	handlers.NewUserHandler(s.services.Users).RegisterRoutes(api)
	handlers.NewBookingHandler(s.services.Bookings).RegisterRoutes(api)

	return router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	log.Info().Str("address", s.config.ServerAddress).Msg("Starting HTTP server")

	if err := s.httpServer.ListenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "HTTP server error")
	}

	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "HTTP server shutdown error")
	}

	log.Info().Msg("HTTP server shut down successfully")
	return nil
}
