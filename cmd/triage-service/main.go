package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SamMurshed/MedQT/internal/config"
	"github.com/SamMurshed/MedQT/internal/httpapi"
	"github.com/SamMurshed/MedQT/internal/predict"
	"github.com/SamMurshed/MedQT/internal/store/postgres"
	"github.com/SamMurshed/MedQT/internal/telemetry"
	"github.com/SamMurshed/MedQT/internal/triage"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const serviceName = "triage-service"

func main() {
	cfg := config.Load()
	initLogger(cfg.Environment)

	shutdownTelemetry := telemetry.Setup(serviceName)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTelemetry(ctx)
	}()

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect")
	}
	defer pool.Close()

	appointments := postgres.NewStore(pool)
	predictor := predict.NewClient(cfg.PredictorURL)
	triageService := triage.NewService(appointments, predictor)

	handler := httpapi.NewHandler(triageService)
	limiter := httpapi.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	routes := httpapi.AuthMiddleware(appointments, handler.Routes())
	otelHandler := otelhttp.NewHandler(httpapi.LoggingMiddleware(limiter.Middleware(routes)), serviceName)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      otelHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("triage-service listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}

func initLogger(environment string) {
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().Str("service", serviceName).Logger()
		return
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Str("service", serviceName).Logger()
}
