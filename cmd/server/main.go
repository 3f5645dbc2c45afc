package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"

	"github.com/ctonneslan/letterboxd-clone/internal/app"
	"github.com/ctonneslan/letterboxd-clone/internal/config"
	"github.com/ctonneslan/letterboxd-clone/internal/database"
	"github.com/ctonneslan/letterboxd-clone/internal/logging"
	"github.com/ctonneslan/letterboxd-clone/internal/server"
	"github.com/ctonneslan/letterboxd-clone/internal/tmdb"
	"github.com/ctonneslan/letterboxd-clone/internal/token"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.RunMigrationsWithLock(ctx, db); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return db
}

func runGracefulShutdown(srv *server.Server, db *pgxpool.Pool) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		db.Close()
		close(done)
	}()

	return done
}

func main() {
	cfg := setupConfig()
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)

	db := setupDB(cfg)

	clock := clockwork.NewRealClock()
	tokens := token.NewService(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, clock)
	catalog := tmdb.NewClient(cfg.TMDBAPIKey, cfg.TMDBBaseURL)

	svc := app.New(
		database.NewUserRepo(db),
		database.NewMovieRepo(db),
		database.NewReviewRepo(db),
		database.NewListRepo(db),
		database.NewWatchlistRepo(db),
		catalog,
		tokens,
		clock,
	)

	srv := server.NewServer(cfg, svc, tokens, db)
	done := runGracefulShutdown(srv, db)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
	slog.Info("Shutdown complete")
}
