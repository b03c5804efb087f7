// Package main runs the developer-network API server.
package main

import (
	"context"
	"database/sql"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	app "github.com/devlink-network/devlink/internal/app"
	"github.com/devlink-network/devlink/internal/app/httpapi"
	"github.com/devlink-network/devlink/internal/app/storage/postgres"
	"github.com/devlink-network/devlink/internal/auth"
	"github.com/devlink-network/devlink/internal/config"
	"github.com/devlink-network/devlink/internal/metrics"
	"github.com/devlink-network/devlink/internal/middleware"
	"github.com/devlink-network/devlink/pkg/logger"
)

func main() {
	envFile := flag.String("env", "", "Path to .env file (default .env if present)")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		logger.NewDefault("server").WithError(err).Error("configuration failed")
		os.Exit(1)
	}

	log := logger.New("server", cfg.LogLevel, cfg.LogFormat)

	var stores app.Stores
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.WithError(err).Error("open database")
			os.Exit(1)
		}
		defer db.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := db.PingContext(pingCtx); err != nil {
			cancel()
			log.WithError(err).Error("ping database")
			os.Exit(1)
		}
		cancel()

		stores = app.Stores{
			Accounts: postgres.NewAccountStore(db),
			Profiles: postgres.NewProfileStore(db),
			Posts:    postgres.NewPostStore(db),
		}
		log.Info("using postgres storage")
	} else {
		log.Warn("DATABASE_URL not set; using in-memory storage")
	}

	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenTTL, "devlink")
	application := app.New(stores, app.Options{
		Tokens:      tokens,
		GithubToken: cfg.GithubToken,
	}, log)

	m := metrics.New()
	router := httpapi.NewHandler(application)
	router.Handle("/metrics", m.Handler()).Methods(http.MethodGet)

	router.Use(middleware.MetricsMiddleware("devlink", m))
	router.Use(middleware.LoggingMiddleware(log))

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, log)
	limiter.StartCleanup(time.Minute)

	cors := middleware.NewCORSMiddleware(cfg.CORSOrigins)
	handler := cors.Handler(limiter.Handler(router))

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.ListenAddr).Info("server listening")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.WithError(err).Error("server error")
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("server shutdown error")
	}
	log.Info("server stopped")
}
