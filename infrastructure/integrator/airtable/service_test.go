package airtable

import (
	"context"
	"errors"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/dealer-crm-api/infrastructure/cache"
	airtabledomain "github.com/vfg2006/dealer-crm-api/infrastructure/integrator/airtable/domain"
	"github.com/vfg2006/dealer-crm-api/infrastructure/integrator/airtable/mocks"
	"github.com/vfg2006/dealer-crm-api/internal/config"
	"github.com/vfg2006/dealer-crm-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func rawRecord(id, fields string) airtabledomain.Record {
	return airtabledomain.Record{
		ID:          id,
		CreatedTime: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		Fields:      jsoniter.RawMessage(fields),
	}
}

func newTestStore(ctrl *gomock.Controller) (*Service, *mocks.MockClient, *cache.MemorySnapshotCache) {
	client := mocks.NewMockClient(ctrl)
	snapshots := cache.NewMemorySnapshotCache(8, time.Minute)
	store := New(&config.Config{}, client).(*Service).WithCache(snapshots)
	return store, client, snapshots
}

func TestService_RefreshClientData(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store, client, snapshots := newTestStore(ctrl)
	ctx := context.Background()

	tests := []struct {
		name     string
		setup    func()
		validate func(t *testing.T, data *domain.ClientData, err error)
	}{
		{
			name: "decodes every table and caches the snapshot",
			setup: func() {
				client.EXPECT().ListRecords(gomock.Any(), "appNorth", domain.TableLeads).Return([]airtabledomain.Record{
					rawRecord("recL1", `{"Full Name":"Ana Silva","Email":"ana@x.com","Source":"Website"}`),
				}, nil)
				client.EXPECT().ListRecords(gomock.Any(), "appNorth", domain.TableAppointments).Return([]airtabledomain.Record{
					rawRecord("recA1", `{"Full Name":"Ana Silva","Date & Time":"2025-06-20T10:00:00.000Z","Channel":"Website"}`),
				}, nil)
				client.EXPECT().ListRecords(gomock.Any(), "appNorth", domain.TableFinance).Return([]airtabledomain.Record{
					rawRecord("recF1", `{"Car price":25000,"Total Cost":28131.44,"Term Months":60}`),
				}, nil)
			},
			validate: func(t *testing.T, data *domain.ClientData, err error) {
				require.NoError(t, err)
				require.Len(t, data.Leads, 1)
				assert.Equal(t, "Ana Silva", data.Leads[0].Fields.FullName)
				require.Len(t, data.Appointments, 1)
				assert.Equal(t, "Website", data.Appointments[0].Fields.Channel)
				require.Len(t, data.FinanceCalculations, 1)
				assert.Equal(t, 28131.44, data.FinanceCalculations[0].Fields.TotalCost)

				cached, ok := snapshots.Get(ctx, "appNorth")
				require.True(t, ok)
				assert.Same(t, data, cached)
			},
		},
		{
			name: "failed table degrades to empty and skips the cache",
			setup: func() {
				client.EXPECT().ListRecords(gomock.Any(), "appSouth", domain.TableLeads).Return([]airtabledomain.Record{
					rawRecord("recL1", `{"Full Name":"Bob"}`),
					rawRecord("recBad", `{"Lead ID":"not-a-number"}`),
				}, nil)
				client.EXPECT().ListRecords(gomock.Any(), "appSouth", domain.TableAppointments).Return(nil, airtabledomain.ErrUnavailable)
				client.EXPECT().ListRecords(gomock.Any(), "appSouth", domain.TableFinance).Return([]airtabledomain.Record{}, nil)
			},
			validate: func(t *testing.T, data *domain.ClientData, err error) {
				require.NoError(t, err)
				require.Len(t, data.Leads, 1)
				assert.NotNil(t, data.Appointments)
				assert.Empty(t, data.Appointments)

				_, ok := snapshots.Get(ctx, "appSouth")
				assert.False(t, ok)
			},
		},
		{
			name: "every table failing is an error",
			setup: func() {
				client.EXPECT().ListRecords(gomock.Any(), "appDown", gomock.Any()).Return(nil, airtabledomain.ErrUnauthorized).Times(3)
			},
			validate: func(t *testing.T, data *domain.ClientData, err error) {
				assert.Nil(t, data)
				assert.ErrorIs(t, err, ErrSnapshotUnavailable)
			},
		},
	}

	baseIDs := []string{"appNorth", "appSouth", "appDown"}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			data, err := store.RefreshClientData(ctx, baseIDs[i])
			tt.validate(t, data, err)
		})
	}
}

func TestService_GetClientData_ServesFromCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store, _, snapshots := newTestStore(ctrl)
	ctx := context.Background()

	cached := &domain.ClientData{Leads: []domain.LeadRecord{{ID: "recCached"}}}
	require.NoError(t, snapshots.Set(ctx, "appNorth", cached))

	// no ListRecords expectation: the client must not be called
	data, err := store.GetClientData(ctx, "appNorth")
	require.NoError(t, err)
	assert.Same(t, cached, data)
}

func TestService_WritesInvalidateSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store, client, snapshots := newTestStore(ctrl)
	ctx := context.Background()

	t.Run("create lead", func(t *testing.T) {
		require.NoError(t, snapshots.Set(ctx, "appNorth", &domain.ClientData{}))

		client.EXPECT().
			CreateRecord(gomock.Any(), "appNorth", domain.TableLeads, domain.Lead{FullName: "Ana"}).
			Return(&airtabledomain.Record{ID: "recNew", Fields: jsoniter.RawMessage(`{"Full Name":"Ana"}`)}, nil)

		record, err := store.CreateLead(ctx, "appNorth", domain.Lead{FullName: "Ana"})
		require.NoError(t, err)
		assert.Equal(t, "recNew", record.ID)
		assert.Equal(t, "Ana", record.Fields.FullName)

		_, ok := snapshots.Get(ctx, "appNorth")
		assert.False(t, ok)
	})

	t.Run("failed delete keeps snapshot", func(t *testing.T) {
		require.NoError(t, snapshots.Set(ctx, "appNorth", &domain.ClientData{}))

		client.EXPECT().
			DeleteRecord(gomock.Any(), "appNorth", domain.TableAppointments, "recGone").
			Return(&airtabledomain.ErrorResponse{StatusCode: 404})

		err := store.DeleteAppointment(ctx, "appNorth", "recGone")
		assert.True(t, errors.Is(err, airtabledomain.ErrNotFound))

		_, ok := snapshots.Get(ctx, "appNorth")
		assert.True(t, ok)
	})

	t.Run("update lead", func(t *testing.T) {
		require.NoError(t, snapshots.Set(ctx, "appNorth", &domain.ClientData{}))

		fields := map[string]any{"Phone": "555"}
		client.EXPECT().
			UpdateRecord(gomock.Any(), "appNorth", domain.TableLeads, "recL1", fields).
			Return(&airtabledomain.Record{ID: "recL1", Fields: jsoniter.RawMessage(`{"Phone":"555"}`)}, nil)

		record, err := store.UpdateLead(ctx, "appNorth", "recL1", fields)
		require.NoError(t, err)
		assert.Equal(t, "555", record.Fields.Phone)

		_, ok := snapshots.Get(ctx, "appNorth")
		assert.False(t, ok)
	})
}
