package analyzing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/dealer-crm-api/infrastructure/integrator/airtable"
	airtablemocks "github.com/vfg2006/dealer-crm-api/infrastructure/integrator/airtable/mocks"
	repomocks "github.com/vfg2006/dealer-crm-api/infrastructure/repository/mocks"
	"github.com/vfg2006/dealer-crm-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func stringPtr(s string) *string {
	return &s
}

func TestService_GetDashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := airtablemocks.NewMockRecordStore(ctrl)
	service := NewService(mockStore, repomocks.NewMockUserRepository(ctrl))

	data := &domain.ClientData{
		Leads: []domain.LeadRecord{
			lead("1", "a@x.com", "Website", refNow),
			lead("2", "b@x.com", "WhatsApp", refNow),
			lead("3", "c@x.com", "Website", refNow),
		},
		Appointments: []domain.AppointmentRecord{
			appointment("1", "a@x.com", "Website", "2025-06-20T10:00:00Z", refNow),
		},
		FinanceCalculations: []domain.FinanceRecord{calculation(1000.25), calculation(2000.5)},
	}

	tests := []struct {
		name     string
		setup    func()
		validate func(t *testing.T, summary *domain.DashboardSummary, err error)
	}{
		{
			name: "aggregates the snapshot",
			setup: func() {
				mockStore.EXPECT().GetClientData(gomock.Any(), "appBase1").Return(data, nil)
			},
			validate: func(t *testing.T, summary *domain.DashboardSummary, err error) {
				require.NoError(t, err)
				assert.Equal(t, 3000.75, summary.TotalIncome)
				assert.Equal(t, 3, summary.TotalLeads)
				assert.Equal(t, 1, summary.TotalBookings)
				assert.Equal(t, 33.3, summary.ConversionRate)
				assert.Equal(t, []domain.NameValue{{Name: "Website", Value: 2}, {Name: "WhatsApp", Value: 1}}, summary.LeadSources)
				require.Len(t, summary.UpcomingAppointments, 1)
			},
		},
		{
			name: "store error is returned",
			setup: func() {
				mockStore.EXPECT().GetClientData(gomock.Any(), "appBase1").Return(nil, airtable.ErrSnapshotUnavailable)
			},
			validate: func(t *testing.T, summary *domain.DashboardSummary, err error) {
				assert.Nil(t, summary)
				assert.ErrorIs(t, err, airtable.ErrSnapshotUnavailable)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			summary, err := service.GetDashboard(context.Background(), "appBase1", refNow)
			tt.validate(t, summary, err)
		})
	}
}

func TestService_GetAnalytics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := airtablemocks.NewMockRecordStore(ctrl)
	service := NewService(mockStore, repomocks.NewMockUserRepository(ctrl))

	mockStore.EXPECT().GetClientData(gomock.Any(), "appBase1").Return(&domain.ClientData{}, nil)

	summary, err := service.GetAnalytics(context.Background(), "appBase1")
	require.NoError(t, err)

	assert.Equal(t, 0.0, summary.ConversionRate)
	assert.Equal(t, 0.0, summary.AverageDealValue)
	assert.Equal(t, NoTopChannel, summary.TopChannel)
	assert.Len(t, summary.SourceConversion, 4)
	assert.Empty(t, summary.MonthlyTrend)
}

func TestService_GetAdminOverview(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := airtablemocks.NewMockRecordStore(ctrl)
	mockUserRepo := repomocks.NewMockUserRepository(ctrl)
	service := NewService(mockStore, mockUserRepo)

	tests := []struct {
		name     string
		setup    func()
		validate func(t *testing.T, overview *domain.AdminOverview, err error)
	}{
		{
			name: "totals and ranks readable clients",
			setup: func() {
				mockUserRepo.EXPECT().ListUsersByRole(gomock.Any(), domain.RoleClient).Return([]*domain.User{
					{ID: 1, Name: "North Motors", Active: true, RoleID: domain.RoleClient, BaseID: stringPtr("appNorth")},
					{ID: 2, Name: "South Cars", Active: true, RoleID: domain.RoleClient, BaseID: stringPtr("appSouth")},
					{ID: 3, Name: "Broken Base", Active: true, RoleID: domain.RoleClient, BaseID: stringPtr("appBroken")},
					{ID: 4, Name: "No Base", Active: true, RoleID: domain.RoleClient},
					{ID: 5, Name: "Disabled", Active: false, RoleID: domain.RoleClient, BaseID: stringPtr("appOff")},
				}, nil)

				mockStore.EXPECT().GetClientData(gomock.Any(), "appNorth").Return(&domain.ClientData{
					Leads:               []domain.LeadRecord{lead("1", "", "", refNow)},
					FinanceCalculations: []domain.FinanceRecord{calculation(1000)},
				}, nil)
				mockStore.EXPECT().GetClientData(gomock.Any(), "appSouth").Return(&domain.ClientData{
					Leads:               []domain.LeadRecord{lead("1", "", "", refNow), lead("2", "", "", refNow)},
					Appointments:        []domain.AppointmentRecord{appointment("1", "", "", "", refNow)},
					FinanceCalculations: []domain.FinanceRecord{calculation(2500.25), calculation(500)},
				}, nil)
				mockStore.EXPECT().GetClientData(gomock.Any(), "appBroken").Return(nil, errors.New("boom"))
			},
			validate: func(t *testing.T, overview *domain.AdminOverview, err error) {
				require.NoError(t, err)
				assert.Equal(t, 5, overview.TotalClients)
				assert.Equal(t, 4, overview.ActiveClients)
				assert.Equal(t, 3, overview.TotalLeads)
				assert.Equal(t, 1, overview.TotalBookings)
				assert.Equal(t, 4000.25, overview.TotalRevenue)
				assert.Equal(t, []int{3}, overview.FailedClients)

				require.Len(t, overview.Ranking, 2)
				assert.Equal(t, 2, overview.Ranking[0].ClientID)
				assert.Equal(t, 1, overview.Ranking[0].Position)
				assert.Equal(t, 1, overview.Ranking[1].ClientID)
				assert.Equal(t, 2, overview.Ranking[1].Position)
			},
		},
		{
			name: "no clients",
			setup: func() {
				mockUserRepo.EXPECT().ListUsersByRole(gomock.Any(), domain.RoleClient).Return([]*domain.User{}, nil)
			},
			validate: func(t *testing.T, overview *domain.AdminOverview, err error) {
				require.NoError(t, err)
				assert.Zero(t, overview.TotalClients)
				assert.Empty(t, overview.Ranking)
				assert.Empty(t, overview.FailedClients)
			},
		},
		{
			name: "repository error",
			setup: func() {
				mockUserRepo.EXPECT().ListUsersByRole(gomock.Any(), domain.RoleClient).Return(nil, errors.New("db down"))
			},
			validate: func(t *testing.T, overview *domain.AdminOverview, err error) {
				assert.Nil(t, overview)
				assert.Error(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			overview, err := service.GetAdminOverview(context.Background())
			tt.validate(t, overview, err)
		})
	}
}
