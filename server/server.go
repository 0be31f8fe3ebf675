// Package server hosts the HTTP surface and background runners.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/grouplabel/grouplabel/internal/profile"
	apiv1 "github.com/grouplabel/grouplabel/server/router/api/v1"
	"github.com/grouplabel/grouplabel/server/runner/signboard"
	"github.com/grouplabel/grouplabel/server/service/label"
	"github.com/grouplabel/grouplabel/store"
)

type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echoServer      *echo.Echo
	labelService    *label.Service
	signboardRunner *signboard.Runner
}

func NewServer(ctx context.Context, profile *profile.Profile, st *store.Store, labelService *label.Service) (*Server, error) {
	s := &Server{
		Profile:      profile,
		Store:        st,
		labelService: labelService,
	}

	echoServer := echo.New()
	echoServer.Debug = true
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.Use(middleware.Recover())
	echoServer.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			slog.Debug("request", "method", v.Method, "uri", v.URI, "status", v.Status)
			return nil
		},
	}))
	s.echoServer = echoServer

	echoServer.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "Service ready.")
	})

	apiV1Service := apiv1.NewAPIV1Service(st, labelService)
	apiV1Service.RegisterRoutes(echoServer.Group("/api/v1"))

	if profile.SignRefreshSpec != "" {
		runner, err := signboard.NewRunner(st, labelService, profile.SignRefreshSpec)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create signboard runner")
		}
		s.signboardRunner = runner
	}

	return s, nil
}

func (s *Server) Start(ctx context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	slog.Info("server started", "address", address, "mode", s.Profile.Mode)

	if s.signboardRunner != nil {
		s.signboardRunner.Start()
	}

	go func() {
		if err := s.echoServer.Start(address); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start echo server", "error", err)
		}
	}()
	return nil
}

func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if s.signboardRunner != nil {
		s.signboardRunner.Stop()
	}

	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}

	if err := s.Store.Close(); err != nil {
		slog.Error("failed to close store", "error", err)
	}

	slog.Info("server shutdown")
}
