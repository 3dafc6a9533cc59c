package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/dealer-crm-api/infrastructure/cache"
	"github.com/vfg2006/dealer-crm-api/infrastructure/database/postgres"
	"github.com/vfg2006/dealer-crm-api/infrastructure/integrator/airtable"
	"github.com/vfg2006/dealer-crm-api/infrastructure/integrator/airtable/airtableclient"
	"github.com/vfg2006/dealer-crm-api/infrastructure/messaging"
	"github.com/vfg2006/dealer-crm-api/infrastructure/repository"
	"github.com/vfg2006/dealer-crm-api/internal/api"
	"github.com/vfg2006/dealer-crm-api/internal/api/handler"
	"github.com/vfg2006/dealer-crm-api/internal/config"
	"github.com/vfg2006/dealer-crm-api/internal/scheduler"
	"github.com/vfg2006/dealer-crm-api/internal/usecases/analyzing"
	"github.com/vfg2006/dealer-crm-api/internal/usecases/authenticating"
	"github.com/vfg2006/dealer-crm-api/internal/usecases/financing"
	"github.com/vfg2006/dealer-crm-api/internal/usecases/tracking"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Invalid log level %q, using info", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	if cfg.Database.RunMigrations {
		if err := postgres.RunMigrations(pgConn); err != nil {
			logrus.WithError(err).Fatal("Could not migrate database")
		}
	}

	userRepo := repository.NewUserRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)
	if err := authenticator.EnsureAdmin(ctx, cfg.App.AdminEmail, cfg.App.AdminPassword); err != nil {
		logrus.WithError(err).Fatal("Could not bootstrap admin account")
	}

	snapshotCache := cache.New(ctx, cfg.Cache)

	airtableClient := airtableclient.NewClient(cfg)
	recordStore := airtable.New(cfg, airtableClient).(*airtable.Service).WithCache(snapshotCache)

	publisher := messaging.New(ctx, cfg.Events)
	defer func() {
		if err := publisher.Close(); err != nil {
			logrus.WithError(err).Warn("Could not close event publisher")
		}
	}()

	analyzer := analyzing.NewService(recordStore, userRepo)
	tracker := tracking.NewService(recordStore, publisher)
	financer := financing.NewService(recordStore, publisher)

	snapshotRefreshService := scheduler.NewSnapshotRefreshService(userRepo, recordStore, cfg)
	if err := snapshotRefreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Could not start snapshot refresh scheduler")
	}

	health := map[string]handler.Pinger{"database": pgConn}
	if pinger, ok := snapshotCache.(handler.Pinger); ok {
		health["cache"] = pinger
	}

	server, err := api.New(cfg, api.Services{
		Authenticator:   authenticator,
		Analyzer:        analyzer,
		Tracker:         tracker,
		Financer:        financer,
		SnapshotRefresh: snapshotRefreshService,
		Health:          health,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Could not connect to PostgreSQL")
	}

	logrus.Info("Connected to PostgreSQL")
	return conn
}
