package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sportsevents/sports-events-api/config"
	"github.com/sportsevents/sports-events-api/internal/api"
	"github.com/sportsevents/sports-events-api/internal/cache"
	"github.com/sportsevents/sports-events-api/internal/db"
	"github.com/sportsevents/sports-events-api/internal/repository"
	"github.com/sportsevents/sports-events-api/internal/service"
	"github.com/sportsevents/sports-events-api/internal/tracing"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long:  `Start the HTTP API server for event listings and bookings`,
	RunE:  runAPI,
}

func init() {
	rootCmd.AddCommand(apiCmd)
}

func runAPI(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	gdb, err := db.Connect(cfg.DB)
	if err != nil {
		return err
	}

	cacheClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Redis cache, continuing without caching")
		cacheClient = cache.NewDisabledClient()
	}
	defer cacheClient.Close()

	tracer, err := tracing.NewTracer(cfg.Tracing)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize tracer, continuing without tracing")
		tracer = tracing.NewNoopTracer()
	}

	categoryRepo := repository.NewCategoryRepository(gdb)
	venueRepo := repository.NewVenueRepository(gdb)
	eventRepo := repository.NewEventRepository(gdb)
	userRepo := repository.NewUserRepository(gdb)
	bookingRepo := repository.NewBookingRepository(gdb)

	services := api.Services{
		Categories: service.NewCategoryService(categoryRepo, eventRepo, cacheClient),
		Venues:     service.NewVenueService(venueRepo, eventRepo, cacheClient),
		Events:     service.NewEventService(eventRepo, categoryRepo, venueRepo, bookingRepo),
		Users:      service.NewUserService(userRepo),
		Bookings:   service.NewBookingService(gdb, bookingRepo, userRepo, tracer),
	}

	server := api.NewServer(cfg, services, tracer)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Start()
	})

	g.Go(func() error {
		<-gctx.Done()
		return server.Shutdown(context.Background())
	})

	return g.Wait()
}
