package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/spaceflights/config"
	"github.com/Domenick1991/spaceflights/internal/bootstrap"
	"github.com/Domenick1991/spaceflights/internal/cache"
	"github.com/Domenick1991/spaceflights/internal/kafka"
	"github.com/Domenick1991/spaceflights/internal/logging"
	"github.com/Domenick1991/spaceflights/internal/repository"
	"github.com/Domenick1991/spaceflights/internal/service/auth"
	"github.com/Domenick1991/spaceflights/internal/service/booking"
	"github.com/Domenick1991/spaceflights/internal/service/flights"
	"github.com/Domenick1991/spaceflights/internal/service/missions"
	"github.com/Domenick1991/spaceflights/internal/service/search"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("load config")
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if cfg.Log.Level != "debug" && cfg.Log.Level != "trace" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logging.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	if cfg.Database.RunMigrations {
		if err := repository.Migrate(ctx, pool); err != nil {
			logging.Fatal().Err(err).Msg("apply migrations")
		}
	}

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Flights.CacheTTL)
	defer redisCache.Close()
	if err := redisCache.Ping(ctx); err != nil {
		logging.Warn().Err(err).Msg("redis unavailable, flights cache and token revocation will fail until it recovers")
	}

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	flightRepo := repository.NewFlightRepository(pool)
	missionRepo := repository.NewMissionRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	services := bootstrap.Services{
		Auth:     auth.NewAuthService(userRepo, redisCache, cfg.Auth),
		Flights:  flights.NewFlightService(flightRepo, redisCache),
		Missions: missions.NewMissionService(missionRepo),
		Bookings: booking.NewReservationService(
			bookingRepo,
			redisCache,
			producer,
			cfg.Kafka.BookingTopic,
			booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
			booking.WithUserDirectory(userRepo),
			booking.WithPublishTimeout(cfg.Kafka.PublishTimeout),
		),
		Search: search.NewSearchService(missionRepo, flightRepo),
		Checks: map[string]func(context.Context) error{
			"postgres": pool.Ping,
			"redis":    redisCache.Ping,
			"kafka":    producer.CheckConnection,
		},
	}

	if err := bootstrap.Run(ctx, cfg, services); err != nil {
		logging.Fatal().Err(err).Msg("server error")
	}
}
