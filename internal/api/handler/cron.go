package handler

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/dealer-crm-api/pkg/apiErrors"
)

const (
	CronJobTypeSnapshots = "snapshots"
	CronJobTypeAll       = "all"
)

// ManualSyncer is a scheduled job that can also be started on demand.
type ManualSyncer interface {
	TriggerManualSync(ctx context.Context) bool
	GetStatus() map[string]any
}

type CronJobServices struct {
	SnapshotRefreshService ManualSyncer
}

func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := pathParam(r, "type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Cron job type is required", nil)
			return
		}

		switch cronType {
		case CronJobTypeSnapshots, CronJobTypeAll:
			if services.SnapshotRefreshService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Snapshot refresh service not available", nil)
				return
			}

			started := services.SnapshotRefreshService.TriggerManualSync(r.Context())
			logrus.WithFields(logrus.Fields{"type": cronType, "started": started}).Info("Manual cron job requested")

			writeJSON(w, http.StatusAccepted, map[string]any{
				"type":    cronType,
				"started": started,
			})

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Unknown cron job type, accepted values: snapshots, all", nil)
		}
	}
}

func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.SnapshotRefreshService != nil {
			status[CronJobTypeSnapshots] = services.SnapshotRefreshService.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	}
}
