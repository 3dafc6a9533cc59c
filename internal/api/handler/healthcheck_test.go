package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

func TestHealthcheckHandler(t *testing.T) {
	up := pingerFunc(func(context.Context) error { return nil })
	down := pingerFunc(func(context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name   string
		deps   map[string]Pinger
		status int
		body   HealthcheckResponse
	}{
		{
			name:   "no dependencies",
			deps:   nil,
			status: http.StatusOK,
			body:   HealthcheckResponse{Status: "ok"},
		},
		{
			name:   "all up",
			deps:   map[string]Pinger{"database": up, "cache": up},
			status: http.StatusOK,
			body:   HealthcheckResponse{Status: "ok", Checks: map[string]string{"database": "up", "cache": "up"}},
		},
		{
			name:   "cache down",
			deps:   map[string]Pinger{"database": up, "cache": down},
			status: http.StatusServiceUnavailable,
			body:   HealthcheckResponse{Status: "degraded", Checks: map[string]string{"database": "up", "cache": "down"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HealthcheckHandler(tt.deps).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

			assert.Equal(t, tt.status, rec.Code)

			var body HealthcheckResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.body.Status, body.Status)
			assert.Equal(t, len(tt.body.Checks), len(body.Checks))
			for name, state := range tt.body.Checks {
				assert.Equal(t, state, body.Checks[name], name)
			}
			assert.NotEmpty(t, body.Time)
		})
	}
}
