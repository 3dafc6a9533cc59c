package airtableclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	airtabledomain "github.com/vfg2006/dealer-crm-api/infrastructure/integrator/airtable/domain"
	"github.com/vfg2006/dealer-crm-api/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(&config.Config{
		Airtable: config.Airtable{
			URL:        server.URL,
			APIKey:     "key-test",
			Timeout:    5 * time.Second,
			MaxRetries: 2,
			RetryDelay: time.Millisecond,
		},
	})
}

func TestListRecords_FollowsOffset(t *testing.T) {
	var calls int32

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)

		assert.Equal(t, "Bearer key-test", r.Header.Get("Authorization"))
		assert.Equal(t, "/appNorth/Finance Calculator", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("pageSize"))

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("offset") {
		case "":
			_, _ = io.WriteString(w, `{"records":[{"id":"rec1","createdTime":"2025-06-01T09:00:00.000Z","fields":{"Total Cost":100}}],"offset":"page2"}`)
		case "page2":
			_, _ = io.WriteString(w, `{"records":[{"id":"rec2","createdTime":"2025-06-02T09:00:00.000Z","fields":{}}]}`)
		default:
			t.Errorf("unexpected offset %q", r.URL.Query().Get("offset"))
		}
	})

	records, err := client.ListRecords(context.Background(), "appNorth", "Finance Calculator")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "rec1", records[0].ID)
	assert.Equal(t, "rec2", records[1].ID)
	assert.JSONEq(t, `{"Total Cost":100}`, string(records[0].Fields))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestDo_RetriesRateLimit(t *testing.T) {
	var calls int32

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = io.WriteString(w, `{"id":"rec1","createdTime":"2025-06-01T09:00:00.000Z","fields":{"Full Name":"Ana"}}`)
	})

	record, err := client.GetRecord(context.Background(), "appNorth", "Leads", "rec1")
	require.NoError(t, err)
	assert.Equal(t, "rec1", record.ID)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestDo_GivesUpAfterMaxRetries(t *testing.T) {
	var calls int32

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"errors":"slow down"}`)
	})

	_, err := client.ListRecords(context.Background(), "appNorth", "Leads")
	require.Error(t, err)
	assert.True(t, errors.Is(err, airtabledomain.ErrRateLimited))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestDo_RetriesServerErrors(t *testing.T) {
	tests := []struct {
		name     string
		statuses []int
		calls    int32
		validate func(t *testing.T, err error)
	}{
		{
			name:     "recovers after a bad gateway",
			statuses: []int{http.StatusBadGateway, http.StatusOK},
			calls:    2,
			validate: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:     "gives up on a persistent outage",
			statuses: []int{http.StatusServiceUnavailable, http.StatusServiceUnavailable, http.StatusServiceUnavailable},
			calls:    3,
			validate: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, airtabledomain.ErrUnavailable)
			},
		},
		{
			name:     "client errors are not retried",
			statuses: []int{http.StatusUnprocessableEntity},
			calls:    1,
			validate: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32

			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				n := atomic.AddInt32(&calls, 1)
				status := tt.statuses[len(tt.statuses)-1]
				if int(n) <= len(tt.statuses) {
					status = tt.statuses[n-1]
				}
				w.WriteHeader(status)
				if status == http.StatusOK {
					_, _ = io.WriteString(w, `{"id":"rec1","createdTime":"2025-06-01T09:00:00.000Z","fields":{}}`)
				}
			})

			_, err := client.GetRecord(context.Background(), "appNorth", "Leads", "rec1")
			tt.validate(t, err)
			assert.Equal(t, tt.calls, atomic.LoadInt32(&calls))
		})
	}
}

func TestDecodeError(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
		errType  string
		message  string
	}{
		{
			name:     "object error",
			status:   http.StatusNotFound,
			body:     `{"error":{"type":"MODEL_ID_NOT_FOUND","message":"Could not find record"}}`,
			sentinel: airtabledomain.ErrNotFound,
			errType:  "MODEL_ID_NOT_FOUND",
			message:  "Could not find record",
		},
		{
			name:     "string error",
			status:   http.StatusNotFound,
			body:     `{"error":"NOT_FOUND"}`,
			sentinel: airtabledomain.ErrNotFound,
			errType:  "NOT_FOUND",
		},
		{
			name:     "unauthorized without body",
			status:   http.StatusUnauthorized,
			body:     ``,
			sentinel: airtabledomain.ErrUnauthorized,
			errType:  "401 Unauthorized",
		},
		{
			name:     "server error",
			status:   http.StatusBadGateway,
			body:     `<html>bad gateway</html>`,
			sentinel: airtabledomain.ErrUnavailable,
			errType:  "502 Bad Gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			err := client.DeleteRecord(context.Background(), "appNorth", "Leads", "rec1")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel))

			var apiErr *airtabledomain.ErrorResponse
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.errType, apiErr.Detail.Type)
			assert.Equal(t, tt.message, apiErr.Detail.Message)
		})
	}
}

func TestCreateRecord_SendsTypecastFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"fields":{"Full Name":"Ana"},"typecast":true}`, string(body))

		_, _ = io.WriteString(w, `{"id":"recNew","createdTime":"2025-06-01T09:00:00.000Z","fields":{"Full Name":"Ana"}}`)
	})

	record, err := client.CreateRecord(context.Background(), "appNorth", "Leads", map[string]any{"Full Name": "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "recNew", record.ID)
}

func TestDeleteRecord_NotDeleted(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":"rec1","deleted":false}`)
	})

	err := client.DeleteRecord(context.Background(), "appNorth", "Leads", "rec1")
	assert.Error(t, err)
}
