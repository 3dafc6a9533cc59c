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

// ListLeads returns the matching leads, newest first. Stats always cover the
// whole table, not just the filtered rows.
func (s *Service) ListLeads(ctx context.Context, baseID string, filters domain.LeadFilters, now time.Time) (*domain.LeadList, error) {
	if err := requireBase(baseID); err != nil {
		return nil, err
	}

	data, err := s.store.GetClientData(ctx, baseID)
	if err != nil {
		return nil, err
	}

	booked := analyzing.AppointmentEmails(data.Appointments)
	term := strings.ToLower(strings.TrimSpace(filters.Search))
	source := strings.TrimSpace(filters.Source)

	items := make([]domain.LeadListItem, 0, len(data.Leads))
	for _, lead := range data.Leads {
		f := lead.Fields
		if term != "" && !containsFold(term, f.FullName, f.Email, f.Phone, f.CarInterest) {
			continue
		}
		if source != "" && f.Source != source {
			continue
		}

		status := domain.LeadStatusPending
		if analyzing.LeadConverted(lead, booked) {
			status = domain.LeadStatusConverted
		}
		items = append(items, domain.LeadListItem{LeadRecord: lead, Status: status})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedTime.After(items[j].CreatedTime)
	})

	return &domain.LeadList{
		Items: items,
		Stats: analyzing.LeadStats(data.Leads, data.Appointments, now),
	}, nil
}

func (s *Service) CreateLead(ctx context.Context, baseID string, req domain.CreateLeadRequest) (*domain.LeadRecord, error) {
	if err := requireBase(baseID); err != nil {
		return nil, err
	}

	lead := domain.Lead{
		FullName:    strings.TrimSpace(req.FullName),
		Email:       strings.TrimSpace(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
		CarInterest: strings.TrimSpace(req.CarInterest),
		Source:      strings.TrimSpace(req.Source),
		Notes:       strings.TrimSpace(req.Notes),
		CreatedDate: s.now().UTC().Format(createdLayout),
	}

	if lead.FullName == "" {
		return nil, NewTrackingError(ErrMissingField, apiErrors.ErrMissingRequiredData, "full_name", "")
	}
	if err := validateEmail(lead.Email); err != nil {
		return nil, err
	}
	if err := validateChannel("source", lead.Source); err != nil {
		return nil, err
	}

	record, err := s.store.CreateLead(ctx, baseID, lead)
	if err != nil {
		return nil, err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"client_base_id": baseID,
		"record_id":      record.ID,
	}).Info("Lead created")

	s.emit(ctx, messaging.EventLeadCreated, baseID, domain.TableLeads, record.ID, record.Fields)

	return record, nil
}

// UpdateLead applies the fields present in req. An explicit empty string
// clears the column, except for the name which cannot be blank.
func (s *Service) UpdateLead(ctx context.Context, baseID, recordID string, req domain.UpdateLeadRequest) (*domain.LeadRecord, error) {
	if err := requireBase(baseID); err != nil {
		return nil, err
	}
	if err := requireRecordID(recordID); err != nil {
		return nil, err
	}

	fields := make(map[string]any)

	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return nil, NewTrackingError(ErrMissingField, apiErrors.ErrMissingRequiredData, "full_name", "")
		}
		fields["Full Name"] = name
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		fields["Email"] = email
	}
	if req.Phone != nil {
		fields["Phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.CarInterest != nil {
		fields["Car Interest"] = strings.TrimSpace(*req.CarInterest)
	}
	if req.Source != nil {
		source := strings.TrimSpace(*req.Source)
		if err := validateChannel("source", source); err != nil {
			return nil, err
		}
		fields["Source"] = source
	}
	if req.Notes != nil {
		fields["Notes"] = strings.TrimSpace(*req.Notes)
	}

	if len(fields) == 0 {
		return nil, NewTrackingError(ErrNothingToApply, apiErrors.ErrInvalidRequest, "", "")
	}

	record, err := s.store.UpdateLead(ctx, baseID, recordID, fields)
	if err != nil {
		return nil, err
	}

	s.emit(ctx, messaging.EventLeadUpdated, baseID, domain.TableLeads, record.ID, fields)

	return record, nil
}

func (s *Service) DeleteLead(ctx context.Context, baseID, recordID string) error {
	if err := requireBase(baseID); err != nil {
		return err
	}
	if err := requireRecordID(recordID); err != nil {
		return err
	}

	if err := s.store.DeleteLead(ctx, baseID, recordID); err != nil {
		return err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"client_base_id": baseID,
		"record_id":      recordID,
	}).Info("Lead deleted")

	s.emit(ctx, messaging.EventLeadDeleted, baseID, domain.TableLeads, recordID, nil)

	return nil
}
