package tracking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	airtabledomain "github.com/vfg2006/dealer-crm-api/infrastructure/integrator/airtable/domain"
	"github.com/vfg2006/dealer-crm-api/infrastructure/messaging"
	"github.com/vfg2006/dealer-crm-api/internal/domain"
	"github.com/vfg2006/dealer-crm-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func TestService_ListAppointments(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, mockStore, _ := newTestService(ctrl)

	data := &domain.ClientData{
		Appointments: []domain.AppointmentRecord{
			{ID: "past", Fields: domain.Appointment{FullName: "Ana", Vehicle: "Civic", Channel: "Website", DateTime: "2025-06-01T10:00:00Z"}},
			{ID: "today", Fields: domain.Appointment{FullName: "Bob", Vehicle: "Golf", Channel: "WhatsApp", DateTime: "2025-06-15T16:00:00Z"}},
			{ID: "later", Fields: domain.Appointment{FullName: "Carla", Vehicle: "Civic Type R", Channel: "Website", DateTime: "2025-06-20T09:30"}},
		},
	}

	tests := []struct {
		name     string
		filters  domain.AppointmentFilters
		validate func(t *testing.T, list *domain.AppointmentList)
	}{
		{
			name: "latest first with status",
			validate: func(t *testing.T, list *domain.AppointmentList) {
				require.Len(t, list.Items, 3)
				assert.Equal(t, "later", list.Items[0].ID)
				assert.Equal(t, domain.AppointmentStatusUpcoming, list.Items[0].Status)
				assert.Equal(t, "today", list.Items[1].ID)
				assert.Equal(t, domain.AppointmentStatusToday, list.Items[1].Status)
				assert.Equal(t, "past", list.Items[2].ID)
				assert.Equal(t, domain.AppointmentStatusCompleted, list.Items[2].Status)

				assert.Equal(t, domain.AppointmentStats{Total: 3, Today: 1, Upcoming: 2, ThisMonth: 3}, list.Stats)
			},
		},
		{
			name:    "search by vehicle",
			filters: domain.AppointmentFilters{Search: "civic"},
			validate: func(t *testing.T, list *domain.AppointmentList) {
				require.Len(t, list.Items, 2)
				assert.Equal(t, "later", list.Items[0].ID)
				assert.Equal(t, "past", list.Items[1].ID)
			},
		},
		{
			name:    "channel filter",
			filters: domain.AppointmentFilters{Channel: "WhatsApp"},
			validate: func(t *testing.T, list *domain.AppointmentList) {
				require.Len(t, list.Items, 1)
				assert.Equal(t, "today", list.Items[0].ID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore.EXPECT().GetClientData(gomock.Any(), "appBase1").Return(data, nil)

			list, err := service.ListAppointments(context.Background(), "appBase1", tt.filters, fixedNow)
			require.NoError(t, err)
			tt.validate(t, list)
		})
	}
}

func TestService_BookAppointment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, mockStore, mockPublisher := newTestService(ctrl)

	tests := []struct {
		name     string
		req      domain.BookAppointmentRequest
		setup    func()
		validate func(t *testing.T, record *domain.AppointmentRecord, err error)
	}{
		{
			name: "books a valid appointment",
			req: domain.BookAppointmentRequest{
				FullName: "Ana Silva",
				Email:    "ana@x.com",
				Vehicle:  "Civic",
				DateTime: "2025-06-20T09:30",
				Channel:  "Facebook",
			},
			setup: func() {
				mockStore.EXPECT().
					CreateAppointment(gomock.Any(), "appBase1", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, a domain.Appointment) (*domain.AppointmentRecord, error) {
						assert.Equal(t, "2025-06-15T12:00:00.000Z", a.Created)
						assert.Equal(t, "Facebook", a.Channel)
						return &domain.AppointmentRecord{ID: "aptNew", Fields: a}, nil
					})
				mockPublisher.EXPECT().Publish(gomock.Any(), messaging.EventAppointmentBooked, gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, record *domain.AppointmentRecord, err error) {
				require.NoError(t, err)
				assert.Equal(t, "aptNew", record.ID)
			},
		},
		{
			name:  "date is required",
			req:   domain.BookAppointmentRequest{FullName: "Ana"},
			setup: func() {},
			validate: func(t *testing.T, _ *domain.AppointmentRecord, err error) {
				requireTrackingCode(t, err, apiErrors.ErrMissingRequiredData, "date_time")
			},
		},
		{
			name:  "unparseable date",
			req:   domain.BookAppointmentRequest{FullName: "Ana", DateTime: "tomorrow at 5"},
			setup: func() {},
			validate: func(t *testing.T, _ *domain.AppointmentRecord, err error) {
				requireTrackingCode(t, err, apiErrors.ErrInvalidFormat, "date_time")
			},
		},
		{
			name:  "unknown channel",
			req:   domain.BookAppointmentRequest{FullName: "Ana", DateTime: "2025-06-20", Channel: "Radio"},
			setup: func() {},
			validate: func(t *testing.T, _ *domain.AppointmentRecord, err error) {
				requireTrackingCode(t, err, apiErrors.ErrInvalidFormat, "channel")
			},
		},
		{
			name:  "name is required",
			req:   domain.BookAppointmentRequest{DateTime: "2025-06-20"},
			setup: func() {},
			validate: func(t *testing.T, _ *domain.AppointmentRecord, err error) {
				requireTrackingCode(t, err, apiErrors.ErrMissingRequiredData, "full_name")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			record, err := service.BookAppointment(context.Background(), "appBase1", tt.req)
			tt.validate(t, record, err)
		})
	}
}

func TestService_BookFromLead(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, mockStore, mockPublisher := newTestService(ctrl)

	lead := &domain.LeadRecord{
		ID: "recLead",
		Fields: domain.Lead{
			FullName:    "Ana Silva",
			Email:       "ana@x.com",
			Phone:       "555-0101",
			CarInterest: "Civic",
			Source:      "Instagram",
		},
	}

	t.Run("copies contact details and defaults", func(t *testing.T) {
		mockStore.EXPECT().GetLead(gomock.Any(), "appBase1", "recLead").Return(lead, nil)
		mockStore.EXPECT().
			CreateAppointment(gomock.Any(), "appBase1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, a domain.Appointment) (*domain.AppointmentRecord, error) {
				assert.Equal(t, "Ana Silva", a.FullName)
				assert.Equal(t, "ana@x.com", a.Email)
				assert.Equal(t, "555-0101", a.Phone)
				assert.Equal(t, "Civic", a.Vehicle)
				assert.Equal(t, "Instagram", a.Channel)
				return &domain.AppointmentRecord{ID: "aptLead", Fields: a}, nil
			})
		mockPublisher.EXPECT().Publish(gomock.Any(), messaging.EventAppointmentBooked, gomock.Any()).Return(nil)

		record, err := service.BookFromLead(context.Background(), "appBase1", "recLead", domain.BookFromLeadRequest{DateTime: "2025-06-21T10:00"})
		require.NoError(t, err)
		assert.Equal(t, "aptLead", record.ID)
	})

	t.Run("request overrides lead values", func(t *testing.T) {
		mockStore.EXPECT().GetLead(gomock.Any(), "appBase1", "recLead").Return(lead, nil)
		mockStore.EXPECT().
			CreateAppointment(gomock.Any(), "appBase1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, a domain.Appointment) (*domain.AppointmentRecord, error) {
				assert.Equal(t, "Accord", a.Vehicle)
				assert.Equal(t, "WhatsApp", a.Channel)
				return &domain.AppointmentRecord{ID: "aptLead2", Fields: a}, nil
			})
		mockPublisher.EXPECT().Publish(gomock.Any(), messaging.EventAppointmentBooked, gomock.Any()).Return(nil)

		_, err := service.BookFromLead(context.Background(), "appBase1", "recLead", domain.BookFromLeadRequest{
			DateTime: "2025-06-21T10:00",
			Vehicle:  "Accord",
			Channel:  "WhatsApp",
		})
		require.NoError(t, err)
	})

	t.Run("lead not found", func(t *testing.T) {
		mockStore.EXPECT().GetLead(gomock.Any(), "appBase1", "recGone").Return(nil, airtabledomain.ErrNotFound)

		_, err := service.BookFromLead(context.Background(), "appBase1", "recGone", domain.BookFromLeadRequest{DateTime: "2025-06-21"})
		assert.ErrorIs(t, err, airtabledomain.ErrNotFound)
	})
}

func TestService_CancelAppointment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, mockStore, mockPublisher := newTestService(ctrl)

	mockStore.EXPECT().DeleteAppointment(gomock.Any(), "appBase1", "apt1").Return(nil)
	mockPublisher.EXPECT().Publish(gomock.Any(), messaging.EventAppointmentCancelled, gomock.Any()).Return(nil)

	assert.NoError(t, service.CancelAppointment(context.Background(), "appBase1", "apt1"))

	err := service.CancelAppointment(context.Background(), "", "apt1")
	requireTrackingCode(t, err, apiErrors.ErrClientHasNoBase, "")
}
