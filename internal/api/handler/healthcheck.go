package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

const healthcheckTimeout = 2 * time.Second

// Pinger is a dependency probed by the healthcheck.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthcheckResponse struct {
	Status string            `json:"status"`
	Time   string            `json:"time"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HealthcheckHandler pings every dependency and answers 503 when any of them
// is down.
func HealthcheckHandler(dependencies map[string]Pinger) http.Handler {
	names := make([]string, 0, len(dependencies))
	for name := range dependencies {
		names = append(names, name)
	}
	sort.Strings(names)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthcheckTimeout)
		defer cancel()

		resp := HealthcheckResponse{
			Status: "ok",
			Time:   time.Now().UTC().Format(time.RFC3339),
			Checks: make(map[string]string, len(names)),
		}
		status := http.StatusOK

		for _, name := range names {
			if err := dependencies[name].Ping(ctx); err != nil {
				logrus.WithError(err).WithField("dependency", name).Warn("Healthcheck dependency down")
				resp.Checks[name] = "down"
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "up"
		}

		writeJSON(w, status, resp)
	})
}
