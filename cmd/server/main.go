package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/relaylabs/visitlog/internal/config"
	"github.com/relaylabs/visitlog/internal/db"
	"github.com/relaylabs/visitlog/internal/geo"
	"github.com/relaylabs/visitlog/internal/handlers"
	"github.com/relaylabs/visitlog/internal/ratelimit"
	"github.com/relaylabs/visitlog/internal/secrets"
	"github.com/relaylabs/visitlog/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := zerolog.New(os.Stderr).With().Timestamp().Logger()
		l.Fatal().Err(err).Msg("config")
	}

	logger := newLogger(cfg)

	// In production the DSN comes from the secret store; everywhere else it
	// is plain local configuration.
	dsn := cfg.DatabaseURL
	if cfg.IsProduction() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		resolver, err := secrets.NewGoogleResolver(ctx, cfg.GCPProject)
		if err != nil {
			logger.Fatal().Err(err).Msg("secret store client")
		}
		dsn, err = resolver.Resolve(ctx, cfg.DatabaseSecret)
		if err != nil {
			logger.Fatal().Err(err).Str("secret", cfg.DatabaseSecret).Msg("resolve database secret")
		}
		resolver.Close()
		cancel()
	}

	database, err := db.Open(dsn)
	if err != nil {
		logger.Fatal().Err(err).Msg("database")
	}

	var geoResolver geo.Resolver
	if cfg.GeoIPPath != "" {
		reader, err := geo.OpenReader(cfg.GeoIPPath)
		if err != nil {
			logger.Fatal().Err(err).Str("path", cfg.GeoIPPath).Msg("geoip database")
		}
		defer reader.Close()
		geoResolver = reader
	} else {
		geoResolver = geo.NewClient(cfg.GeoBaseURL, cfg.GeoTimeout, logger)
	}

	limiter, err := ratelimit.New(cfg.RateLimit, cfg.RateWindow, cfg.RateCacheSize)
	if err != nil {
		logger.Fatal().Err(err).Msg("rate limiter")
	}

	visitHandler := &handlers.VisitHandler{DB: database, Geo: geoResolver, Log: logger}
	healthHandler := &handlers.HealthHandler{DB: database, Log: logger}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(handlers.RequestLogger(logger))

	r.Get("/", handlers.Root)
	r.Get("/_health", healthHandler.Health)
	r.Get("/favicon.ico", handlers.Favicon)
	r.Get("/logs", web.Logs)

	r.Route("/api", func(r chi.Router) {
		r.Use(handlers.RateLimit(limiter))
		r.Get("/client-info", visitHandler.ClientInfo)
		r.Get("/logs", visitHandler.Logs)
		r.Get("/stats", visitHandler.Stats)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("visitlog listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server")
		}
	}()

	<-stop
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server shutdown")
	}

	if err := database.Close(); err != nil {
		logger.Error().Err(err).Msg("close database")
		os.Exit(1)
	}
	logger.Info().Msg("goodbye")
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var out io.Writer = os.Stderr
	if cfg.LogFormat == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
