package tracking

import (
	"context"
	"strings"
	"time"

	"github.com/vfg2006/dealer-crm-api/infrastructure/integrator/airtable"
	"github.com/vfg2006/dealer-crm-api/infrastructure/messaging"
	"github.com/vfg2006/dealer-crm-api/internal/domain"
	"github.com/vfg2006/dealer-crm-api/pkg/apiErrors"
)

// createdLayout matches the ISO timestamps the store's own forms write.
const createdLayout = "2006-01-02T15:04:05.000Z07:00"

type Tracker interface {
	ListLeads(ctx context.Context, baseID string, filters domain.LeadFilters, now time.Time) (*domain.LeadList, error)
	CreateLead(ctx context.Context, baseID string, req domain.CreateLeadRequest) (*domain.LeadRecord, error)
	UpdateLead(ctx context.Context, baseID, recordID string, req domain.UpdateLeadRequest) (*domain.LeadRecord, error)
	DeleteLead(ctx context.Context, baseID, recordID string) error

	ListAppointments(ctx context.Context, baseID string, filters domain.AppointmentFilters, now time.Time) (*domain.AppointmentList, error)
	BookAppointment(ctx context.Context, baseID string, req domain.BookAppointmentRequest) (*domain.AppointmentRecord, error)
	CancelAppointment(ctx context.Context, baseID, recordID string) error
	BookFromLead(ctx context.Context, baseID, leadRecordID string, req domain.BookFromLeadRequest) (*domain.AppointmentRecord, error)
}

type Service struct {
	store     airtable.RecordStore
	publisher messaging.Publisher
	now       func() time.Time
}

func NewService(store airtable.RecordStore, publisher messaging.Publisher) Tracker {
	return &Service{
		store:     store,
		publisher: publisher,
		now:       time.Now,
	}
}

func requireBase(baseID string) error {
	if baseID == "" {
		return NewTrackingError(ErrMissingBase, apiErrors.ErrClientHasNoBase, "", "")
	}
	return nil
}

func requireRecordID(recordID string) error {
	if strings.TrimSpace(recordID) == "" {
		return NewTrackingError(ErrMissingField, apiErrors.ErrMissingRequiredData, "record_id", "")
	}
	return nil
}

// containsFold reports whether any of values contains term, ignoring case.
// term must already be lower-cased.
func containsFold(term string, values ...string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), term) {
			return true
		}
	}
	return false
}

func validateEmail(email string) error {
	if email != "" && !strings.Contains(email, "@") {
		return NewTrackingError(ErrInvalidField, apiErrors.ErrInvalidFormat, "email", "email is not valid")
	}
	return nil
}

func validateChannel(field, channel string) error {
	if channel != "" && !domain.Channel(channel).IsValid() {
		return NewTrackingError(ErrInvalidField, apiErrors.ErrInvalidFormat, field, "must be one of Website, WhatsApp, Instagram, Facebook")
	}
	return nil
}

func (s *Service) emit(ctx context.Context, eventType, baseID, table, recordID string, fields any) {
	messaging.Emit(ctx, s.publisher, eventType, messaging.RecordEvent{
		BaseID:   baseID,
		Table:    table,
		RecordID: recordID,
		Fields:   fields,
	})
}
