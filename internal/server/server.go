// Package server exposes the HTTP surface: JSON handlers over the app
// services, bearer-token authorization, and the observability endpoints.
package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/ctonneslan/letterboxd-clone/internal/app"
	"github.com/ctonneslan/letterboxd-clone/internal/config"
	apperrors "github.com/ctonneslan/letterboxd-clone/internal/errors"
	"github.com/ctonneslan/letterboxd-clone/internal/token"
)

// dbPinger is the slice of the connection pool the readiness check needs.
type dbPinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	echo   *echo.Echo
	config *config.Config
	app    *app.Service
	tokens *token.Service
	db     dbPinger
}

func NewServer(cfg *config.Config, svc *app.Service, tokens *token.Service, db dbPinger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			slog.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:   e,
		config: cfg,
		app:    svc,
		tokens: tokens,
		db:     db,
	}
	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("starting server", "port", s.config.Port)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
