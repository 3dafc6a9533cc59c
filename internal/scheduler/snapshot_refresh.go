package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/dealer-crm-api/infrastructure/integrator/airtable"
	"github.com/vfg2006/dealer-crm-api/infrastructure/repository"
	"github.com/vfg2006/dealer-crm-api/internal/config"
	"github.com/vfg2006/dealer-crm-api/internal/domain"
)

// SnapshotRefreshConfig is the scheduler's slice of the app config.
type SnapshotRefreshConfig struct {
	CronSchedule      string
	MaxConcurrentJobs int
	SyncEnabled       bool
}

// SnapshotRefreshService re-reads every active client's base on a schedule so
// dashboards are served from a warm cache.
type SnapshotRefreshService struct {
	scheduler *gocron.Scheduler
	config    SnapshotRefreshConfig
	userRepo  repository.UserRepository
	store     airtable.RecordStore

	syncMutex           sync.Mutex
	syncRunning         bool
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastProcessed       int
	lastFailed          int
}

func NewSnapshotRefreshService(
	userRepo repository.UserRepository,
	store airtable.RecordStore,
	appConfig *config.Config,
) *SnapshotRefreshService {
	refreshConfig := SnapshotRefreshConfig{
		CronSchedule:      appConfig.SnapshotRefresh.CronSchedule,
		MaxConcurrentJobs: appConfig.SnapshotRefresh.MaxConcurrentJobs,
		SyncEnabled:       appConfig.SnapshotRefresh.Enabled,
	}

	if refreshConfig.MaxConcurrentJobs <= 0 {
		refreshConfig.MaxConcurrentJobs = 1
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":       refreshConfig.CronSchedule,
		"max_concurrent_jobs": refreshConfig.MaxConcurrentJobs,
		"sync_enabled":        refreshConfig.SyncEnabled,
	}).Info("Snapshot refresh scheduler configured")

	return &SnapshotRefreshService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    refreshConfig,
		userRepo:  userRepo,
		store:     store,
	}
}

func (s *SnapshotRefreshService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Snapshot refresh disabled by configuration")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Starting snapshot refresh scheduler")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.refreshAll(ctx)
	})
	if err != nil {
		return fmt.Errorf("error scheduling snapshot refresh: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Stopping snapshot refresh scheduler")
		s.scheduler.Stop()
	}()

	return nil
}

// refreshAll refreshes every active client. Overlapping runs are skipped.
func (s *SnapshotRefreshService) refreshAll(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Snapshot refresh already running, skipping")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	startTime := time.Now()
	processed, failed := 0, 0

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastProcessed = processed
		s.lastFailed = failed
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	clients, err := s.getActiveClients(ctx)
	if err != nil {
		logrus.WithError(err).Error("Could not list clients for snapshot refresh")
		return
	}

	if len(clients) == 0 {
		logrus.Info("No active clients to refresh")
		return
	}

	processed, failed = s.refreshClients(ctx, clients)

	logrus.WithFields(logrus.Fields{
		"duration":  time.Since(startTime).String(),
		"clients":   len(clients),
		"processed": processed,
		"failed":    failed,
	}).Info("Snapshot refresh finished")
}

// getActiveClients keeps active clients that have a base to read.
func (s *SnapshotRefreshService) getActiveClients(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userRepo.ListUsersByRole(ctx, domain.RoleClient)
	if err != nil {
		return nil, err
	}

	clients := make([]*domain.User, 0, len(users))
	for _, u := range users {
		if !u.Active {
			continue
		}
		if !u.IsClient() {
			logrus.WithField("client_id", u.ID).Warn("Client without base, skipping")
			continue
		}
		clients = append(clients, u)
	}

	return clients, nil
}

func (s *SnapshotRefreshService) refreshClients(ctx context.Context, clients []*domain.User) (int, int) {
	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		processed int
		failed    int
	)

	for _, client := range clients {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(c *domain.User) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			_, err := s.store.RefreshClientData(ctx, *c.BaseID)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				failed++
				logrus.WithFields(logrus.Fields{
					"client_id":      c.ID,
					"client_base_id": *c.BaseID,
					"error":          err.Error(),
				}).Error("Could not refresh client snapshot")
				return
			}

			processed++
		}(client)
	}

	wg.Wait()

	return processed, failed
}

// TriggerManualSync starts a refresh in the background unless one is running.
func (s *SnapshotRefreshService) TriggerManualSync(ctx context.Context) bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Snapshot refresh already running, ignoring manual trigger")
		return false
	}
	s.syncMutex.Unlock()

	logrus.Info("Starting manual snapshot refresh")
	go s.refreshAll(context.WithoutCancel(ctx))

	return true
}

func (s *SnapshotRefreshService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_max_concurrent":    s.config.MaxConcurrentJobs,
		"running":                s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_processed":         s.lastProcessed,
		"last_failed":            s.lastFailed,
	}
}
