package financing

import (
	"context"
	"sort"

	"github.com/vfg2006/dealer-crm-api/infrastructure/integrator/airtable"
	"github.com/vfg2006/dealer-crm-api/infrastructure/messaging"
	"github.com/vfg2006/dealer-crm-api/internal/domain"
	"github.com/vfg2006/dealer-crm-api/pkg/apiErrors"
	"github.com/vfg2006/dealer-crm-api/pkg/log"
)

type Financer interface {
	Quote(input domain.LoanInput) (domain.LoanResult, error)
	Calculate(ctx context.Context, baseID string, input domain.LoanInput) (*domain.FinanceRecord, domain.LoanResult, error)
	ListCalculations(ctx context.Context, baseID string) ([]domain.FinanceRecord, error)
	DeleteCalculation(ctx context.Context, baseID, recordID string) error
}

type Service struct {
	store     airtable.RecordStore
	publisher messaging.Publisher
}

func NewService(store airtable.RecordStore, publisher messaging.Publisher) Financer {
	return &Service{
		store:     store,
		publisher: publisher,
	}
}

// Quote prices a deal without storing it.
func (s *Service) Quote(input domain.LoanInput) (domain.LoanResult, error) {
	return ComputeLoan(input)
}

// Calculate prices a deal and saves it to the client's Finance Calculator table.
func (s *Service) Calculate(ctx context.Context, baseID string, input domain.LoanInput) (*domain.FinanceRecord, domain.LoanResult, error) {
	if baseID == "" {
		return nil, domain.LoanResult{}, NewFinanceError(ErrMissingBase, apiErrors.ErrClientHasNoBase, "", "")
	}

	result, err := ComputeLoan(input)
	if err != nil {
		return nil, domain.LoanResult{}, err
	}

	record, err := s.store.CreateFinanceCalculation(ctx, baseID, ToCalculation(input, result))
	if err != nil {
		return nil, result, err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"client_base_id": baseID,
		"record_id":      record.ID,
	}).Info("Finance calculation saved")

	messaging.Emit(ctx, s.publisher, messaging.EventFinanceCalculated, messaging.RecordEvent{
		BaseID:   baseID,
		Table:    domain.TableFinance,
		RecordID: record.ID,
		Fields:   record.Fields,
	})

	return record, result, nil
}

// ListCalculations returns the saved calculations, newest first.
func (s *Service) ListCalculations(ctx context.Context, baseID string) ([]domain.FinanceRecord, error) {
	if baseID == "" {
		return nil, NewFinanceError(ErrMissingBase, apiErrors.ErrClientHasNoBase, "", "")
	}

	data, err := s.store.GetClientData(ctx, baseID)
	if err != nil {
		return nil, err
	}

	calculations := make([]domain.FinanceRecord, len(data.FinanceCalculations))
	copy(calculations, data.FinanceCalculations)
	sort.SliceStable(calculations, func(i, j int) bool {
		return calculations[i].CreatedTime.After(calculations[j].CreatedTime)
	})

	return calculations, nil
}

func (s *Service) DeleteCalculation(ctx context.Context, baseID, recordID string) error {
	if baseID == "" {
		return NewFinanceError(ErrMissingBase, apiErrors.ErrClientHasNoBase, "", "")
	}
	if recordID == "" {
		return NewFinanceError(ErrMissingRecord, apiErrors.ErrMissingRequiredData, "record_id", "")
	}

	if err := s.store.DeleteFinanceCalculation(ctx, baseID, recordID); err != nil {
		return err
	}

	messaging.Emit(ctx, s.publisher, messaging.EventFinanceDeleted, messaging.RecordEvent{
		BaseID:   baseID,
		Table:    domain.TableFinance,
		RecordID: recordID,
	})

	return nil
}
