package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/spaceflights/api"
	"github.com/Domenick1991/spaceflights/config"
	"github.com/Domenick1991/spaceflights/internal/logging"
	"github.com/Domenick1991/spaceflights/internal/middleware"
	"github.com/Domenick1991/spaceflights/internal/service/auth"
	"github.com/Domenick1991/spaceflights/internal/service/booking"
	"github.com/Domenick1991/spaceflights/internal/service/flights"
	"github.com/Domenick1991/spaceflights/internal/service/missions"
	"github.com/Domenick1991/spaceflights/internal/service/search"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Services are the use cases exposed over HTTP.
type Services struct {
	Auth     auth.AuthUseCase
	Flights  flights.FlightUseCase
	Missions missions.MissionUseCase
	Bookings booking.ReservationUseCase
	Search   search.SearchUseCase
	// Checks are run by /readyz, keyed by dependency name.
	Checks map[string]func(context.Context) error
}

// Run starts the HTTP server and blocks until ctx is canceled or the server fails.
func Run(ctx context.Context, cfg *config.Config, svc Services) error {
	srv := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      NewRouter(cfg, svc),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("address", cfg.HTTP.Address).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		logging.Info().Msg("shutting down http server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func NewRouter(cfg *config.Config, svc Services) *gin.Engine {
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.Metrics(),
		cors.New(corsConfig(cfg.HTTP.CORSOrigins)),
	)

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/readyz", readiness(svc.Checks))
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.HTTP.SwaggerDir != "" {
		engine.Static("/swagger", cfg.HTTP.SwaggerDir)
		engine.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/space.swagger.json"))))
	}

	limiter := middleware.NewRateLimiter(cfg.HTTP.AuthRatePerMinute, time.Minute)
	public := engine.Group("/")
	protected := engine.Group("/", middleware.Auth(svc.Auth))

	api.NewAuthHandler(svc.Auth).Register(public, protected, middleware.RateLimit(limiter))
	api.NewSearchHandler(svc.Search).Register(public)
	api.NewWatermarkHandler(cfg.Upload.MaxImageBytes, cfg.Upload.MaxImagePixels).Register(protected)
	api.NewMissionHandler(svc.Missions).Register(protected.Group("/missions"))
	api.NewFlightHandler(svc.Flights).Register(protected.Group("/space-flights"))
	api.NewBookingHandler(svc.Bookings).Register(protected.Group("/book-flight"))

	return engine
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", middleware.HeaderRequestID)
	cfg.ExposeHeaders = []string{middleware.HeaderRequestID}
	return cfg
}

func readiness(checks map[string]func(context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		result := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				result[name] = err.Error()
				continue
			}
			result[name] = "ok"
		}
		c.JSON(status, result)
	}
}
