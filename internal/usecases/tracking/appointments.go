package tracking

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/vfg2006/dealer-crm-api/infrastructure/messaging"
	"github.com/vfg2006/dealer-crm-api/internal/domain"
	"github.com/vfg2006/dealer-crm-api/internal/usecases/analyzing"
	"github.com/vfg2006/dealer-crm-api/pkg/apiErrors"
	"github.com/vfg2006/dealer-crm-api/pkg/log"
)

// ListAppointments returns the matching appointments, latest scheduled first,
// each tagged with its status relative to now.
func (s *Service) ListAppointments(ctx context.Context, baseID string, filters domain.AppointmentFilters, now time.Time) (*domain.AppointmentList, error) {
	if err := requireBase(baseID); err != nil {
		return nil, err
	}

	data, err := s.store.GetClientData(ctx, baseID)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(filters.Search))
	channel := strings.TrimSpace(filters.Channel)

	items := make([]domain.AppointmentListItem, 0, len(data.Appointments))
	for _, appointment := range data.Appointments {
		f := appointment.Fields
		if term != "" && !containsFold(term, f.FullName, f.Email, f.Phone, f.Vehicle) {
			continue
		}
		if channel != "" && f.Channel != channel {
			continue
		}

		items = append(items, domain.AppointmentListItem{
			AppointmentRecord: appointment,
			Status:            analyzing.AppointmentStatus(appointment, now),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ScheduledOrCreatedAt().After(items[j].ScheduledOrCreatedAt())
	})

	return &domain.AppointmentList{
		Items: items,
		Stats: analyzing.AppointmentStats(data.Appointments, now),
	}, nil
}

func (s *Service) BookAppointment(ctx context.Context, baseID string, req domain.BookAppointmentRequest) (*domain.AppointmentRecord, error) {
	if err := requireBase(baseID); err != nil {
		return nil, err
	}

	appointment := domain.Appointment{
		FullName: strings.TrimSpace(req.FullName),
		Email:    strings.TrimSpace(req.Email),
		Phone:    strings.TrimSpace(req.Phone),
		Vehicle:  strings.TrimSpace(req.Vehicle),
		DateTime: strings.TrimSpace(req.DateTime),
		Channel:  strings.TrimSpace(req.Channel),
	}

	return s.book(ctx, baseID, appointment)
}

// BookFromLead books an appointment for an existing lead, copying its contact
// details. The lead's car interest is used when no vehicle is given.
func (s *Service) BookFromLead(ctx context.Context, baseID, leadRecordID string, req domain.BookFromLeadRequest) (*domain.AppointmentRecord, error) {
	if err := requireBase(baseID); err != nil {
		return nil, err
	}
	if err := requireRecordID(leadRecordID); err != nil {
		return nil, err
	}

	lead, err := s.store.GetLead(ctx, baseID, leadRecordID)
	if err != nil {
		return nil, err
	}

	vehicle := strings.TrimSpace(req.Vehicle)
	if vehicle == "" {
		vehicle = lead.Fields.CarInterest
	}

	channel := strings.TrimSpace(req.Channel)
	if channel == "" && domain.Channel(lead.Fields.Source).IsValid() {
		channel = lead.Fields.Source
	}

	return s.book(ctx, baseID, domain.Appointment{
		FullName: lead.Fields.FullName,
		Email:    lead.Fields.Email,
		Phone:    lead.Fields.Phone,
		Vehicle:  vehicle,
		DateTime: strings.TrimSpace(req.DateTime),
		Channel:  channel,
	})
}

func (s *Service) book(ctx context.Context, baseID string, appointment domain.Appointment) (*domain.AppointmentRecord, error) {
	if appointment.FullName == "" {
		return nil, NewTrackingError(ErrMissingField, apiErrors.ErrMissingRequiredData, "full_name", "")
	}
	if appointment.DateTime == "" {
		return nil, NewTrackingError(ErrMissingField, apiErrors.ErrMissingRequiredData, "date_time", "")
	}
	if _, ok := domain.ParseTimestamp(appointment.DateTime); !ok {
		return nil, NewTrackingError(ErrInvalidField, apiErrors.ErrInvalidFormat, "date_time", "expected an ISO date and time")
	}
	if err := validateEmail(appointment.Email); err != nil {
		return nil, err
	}
	if err := validateChannel("channel", appointment.Channel); err != nil {
		return nil, err
	}

	appointment.Created = s.now().UTC().Format(createdLayout)

	record, err := s.store.CreateAppointment(ctx, baseID, appointment)
	if err != nil {
		return nil, err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"client_base_id": baseID,
		"record_id":      record.ID,
	}).Info("Appointment booked")

	s.emit(ctx, messaging.EventAppointmentBooked, baseID, domain.TableAppointments, record.ID, record.Fields)

	return record, nil
}

func (s *Service) CancelAppointment(ctx context.Context, baseID, recordID string) error {
	if err := requireBase(baseID); err != nil {
		return err
	}
	if err := requireRecordID(recordID); err != nil {
		return err
	}

	if err := s.store.DeleteAppointment(ctx, baseID, recordID); err != nil {
		return err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"client_base_id": baseID,
		"record_id":      recordID,
	}).Info("Appointment cancelled")

	s.emit(ctx, messaging.EventAppointmentCancelled, baseID, domain.TableAppointments, recordID, nil)

	return nil
}
