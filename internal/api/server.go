package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/dealer-crm-api/internal/api/handler"
	"github.com/vfg2006/dealer-crm-api/internal/api/handler/router"
	"github.com/vfg2006/dealer-crm-api/internal/config"
	"github.com/vfg2006/dealer-crm-api/internal/usecases/analyzing"
	"github.com/vfg2006/dealer-crm-api/internal/usecases/authenticating"
	"github.com/vfg2006/dealer-crm-api/internal/usecases/financing"
	"github.com/vfg2006/dealer-crm-api/internal/usecases/tracking"
	"github.com/vfg2006/dealer-crm-api/pkg/apiErrors"
	"github.com/vfg2006/dealer-crm-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

type Services struct {
	Authenticator   authenticating.Authenticator
	Analyzer        analyzing.Analyzer
	Tracker         tracking.Tracker
	Financer        financing.Financer
	SnapshotRefresh handler.ManualSyncer
	// Health lists the dependencies probed by /healthcheck, by name.
	Health map[string]handler.Pinger
}

func New(config *config.Config, services Services) (*Server, error) {
	cronServices := handler.CronJobServices{
		SnapshotRefreshService: services.SnapshotRefresh,
	}

	resolver := services.Authenticator

	rt := router.New(
		router.NotFound(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiErrors.WriteError(w, apiErrors.ErrRecordNotFound, "Route not found", nil)
		})),
		router.MethodNotAllowed(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Method not allowed on this route", nil)
		})),
		router.WithRoutes(handler.Healthcheck(services.Health)...),
		router.WithRoutes(handler.Authentication(services.Authenticator)...),
		router.WithRoutes(handler.Clients(services.Authenticator)...),
		router.WithRoutes(handler.Analytics(services.Analyzer, resolver)...),
		router.WithRoutes(handler.Tracking(services.Tracker, resolver)...),
		router.WithRoutes(handler.Finance(services.Financer, resolver)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins),
		middleware.AuthMiddleware(services.Authenticator),
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           alice.New(middlewares...).Then(rt),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Server starting")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Server stopped unexpectedly")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Interrupt signal received")
	case <-ctx.Done():
		logrus.Info("Application context cancelled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": shutdownTimeout.String(),
	}).Info("Shutting down server")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Error during server shutdown")
		return err
	}

	logrus.Info("Server stopped")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
