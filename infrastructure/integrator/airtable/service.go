package airtable

import (
	"context"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/dealer-crm-api/infrastructure/cache"
	"github.com/vfg2006/dealer-crm-api/infrastructure/integrator/airtable/airtableclient"
	airtabledomain "github.com/vfg2006/dealer-crm-api/infrastructure/integrator/airtable/domain"
	"github.com/vfg2006/dealer-crm-api/internal/config"
	"github.com/vfg2006/dealer-crm-api/internal/domain"
	"github.com/vfg2006/dealer-crm-api/pkg/log"
	"golang.org/x/sync/errgroup"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrSnapshotUnavailable is returned when none of a base's tables could be read.
var ErrSnapshotUnavailable = errors.New("client base unavailable")

// RecordStore is the typed view over a client's base.
type RecordStore interface {
	GetClientData(ctx context.Context, baseID string) (*domain.ClientData, error)
	RefreshClientData(ctx context.Context, baseID string) (*domain.ClientData, error)

	GetLead(ctx context.Context, baseID, recordID string) (*domain.LeadRecord, error)
	CreateLead(ctx context.Context, baseID string, lead domain.Lead) (*domain.LeadRecord, error)
	UpdateLead(ctx context.Context, baseID, recordID string, fields map[string]any) (*domain.LeadRecord, error)
	DeleteLead(ctx context.Context, baseID, recordID string) error

	CreateAppointment(ctx context.Context, baseID string, appointment domain.Appointment) (*domain.AppointmentRecord, error)
	DeleteAppointment(ctx context.Context, baseID, recordID string) error

	CreateFinanceCalculation(ctx context.Context, baseID string, calculation domain.FinanceCalculation) (*domain.FinanceRecord, error)
	DeleteFinanceCalculation(ctx context.Context, baseID, recordID string) error
}

type Service struct {
	cfg    *config.Config
	Client airtableclient.Client
	cache  cache.SnapshotCache
	now    func() time.Time
}

func New(cfg *config.Config, client airtableclient.Client) RecordStore {
	return &Service{
		cfg:    cfg,
		Client: client,
		cache:  cache.NoopSnapshotCache{},
		now:    time.Now,
	}
}

// WithCache makes GetClientData serve snapshots from c. Writes invalidate
// the cached snapshot of the affected base.
func (s *Service) WithCache(c cache.SnapshotCache) *Service {
	s.cache = c
	return s
}

func (s *Service) GetClientData(ctx context.Context, baseID string) (*domain.ClientData, error) {
	if data, ok := s.cache.Get(ctx, baseID); ok {
		return data, nil
	}

	return s.RefreshClientData(ctx, baseID)
}

// RefreshClientData reads the three tables concurrently. A table that fails
// degrades to an empty collection; the snapshot is only cached when every
// table was read.
func (s *Service) RefreshClientData(ctx context.Context, baseID string) (*domain.ClientData, error) {
	logger := log.ForContext(ctx).WithField("client_base_id", baseID)

	var (
		leads        []domain.LeadRecord
		appointments []domain.AppointmentRecord
		calculations []domain.FinanceRecord
		failed       = make([]bool, 3)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		leads, failed[0] = listTable[domain.Lead](gctx, s.Client, logger, baseID, domain.TableLeads)
		return nil
	})
	g.Go(func() error {
		appointments, failed[1] = listTable[domain.Appointment](gctx, s.Client, logger, baseID, domain.TableAppointments)
		return nil
	})
	g.Go(func() error {
		calculations, failed[2] = listTable[domain.FinanceCalculation](gctx, s.Client, logger, baseID, domain.TableFinance)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if failed[0] && failed[1] && failed[2] {
		return nil, errors.Wrapf(ErrSnapshotUnavailable, "base %s", baseID)
	}

	data := &domain.ClientData{
		Leads:               leads,
		Appointments:        appointments,
		FinanceCalculations: calculations,
		FetchedAt:           s.now().UTC(),
	}

	if !failed[0] && !failed[1] && !failed[2] {
		if err := s.cache.Set(ctx, baseID, data); err != nil {
			logger.WithError(err).Warn("Could not cache client snapshot")
		}
	}

	return data, nil
}

// listTable returns the decoded rows of a table and whether the read failed.
func listTable[T any](ctx context.Context, client airtableclient.Client, logger log.Logger, baseID, table string) ([]domain.Record[T], bool) {
	raw, err := client.ListRecords(ctx, baseID, table)
	if err != nil {
		logger.WithError(err).WithField("table", table).Warn("Could not read table, continuing with no rows")
		return []domain.Record[T]{}, true
	}

	records := make([]domain.Record[T], 0, len(raw))
	for _, r := range raw {
		record, err := decodeRecord[T](r)
		if err != nil {
			logger.WithError(err).WithFields(log.Fields{"table": table, "record_id": r.ID}).Warn("Skipping unreadable record")
			continue
		}
		records = append(records, *record)
	}

	return records, false
}

func decodeRecord[T any](raw airtabledomain.Record) (*domain.Record[T], error) {
	record := &domain.Record[T]{
		ID:          raw.ID,
		CreatedTime: raw.CreatedTime,
	}

	if len(raw.Fields) > 0 {
		if err := json.Unmarshal(raw.Fields, &record.Fields); err != nil {
			return nil, errors.Wrapf(err, "error decoding record %s", raw.ID)
		}
	}

	return record, nil
}

func (s *Service) invalidate(ctx context.Context, baseID string) {
	if err := s.cache.Delete(ctx, baseID); err != nil {
		log.ForContext(ctx).WithError(err).WithField("client_base_id", baseID).Warn("Could not invalidate client snapshot")
	}
}

func create[T any](ctx context.Context, s *Service, baseID, table string, fields T) (*domain.Record[T], error) {
	raw, err := s.Client.CreateRecord(ctx, baseID, table, fields)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, baseID)

	return decodeRecord[T](*raw)
}

func (s *Service) remove(ctx context.Context, baseID, table, recordID string) error {
	if err := s.Client.DeleteRecord(ctx, baseID, table, recordID); err != nil {
		return err
	}
	s.invalidate(ctx, baseID)
	return nil
}

func (s *Service) GetLead(ctx context.Context, baseID, recordID string) (*domain.LeadRecord, error) {
	raw, err := s.Client.GetRecord(ctx, baseID, domain.TableLeads, recordID)
	if err != nil {
		return nil, err
	}
	return decodeRecord[domain.Lead](*raw)
}

func (s *Service) CreateLead(ctx context.Context, baseID string, lead domain.Lead) (*domain.LeadRecord, error) {
	return create(ctx, s, baseID, domain.TableLeads, lead)
}

func (s *Service) UpdateLead(ctx context.Context, baseID, recordID string, fields map[string]any) (*domain.LeadRecord, error) {
	raw, err := s.Client.UpdateRecord(ctx, baseID, domain.TableLeads, recordID, fields)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, baseID)

	return decodeRecord[domain.Lead](*raw)
}

func (s *Service) DeleteLead(ctx context.Context, baseID, recordID string) error {
	return s.remove(ctx, baseID, domain.TableLeads, recordID)
}

func (s *Service) CreateAppointment(ctx context.Context, baseID string, appointment domain.Appointment) (*domain.AppointmentRecord, error) {
	return create(ctx, s, baseID, domain.TableAppointments, appointment)
}

func (s *Service) DeleteAppointment(ctx context.Context, baseID, recordID string) error {
	return s.remove(ctx, baseID, domain.TableAppointments, recordID)
}

func (s *Service) CreateFinanceCalculation(ctx context.Context, baseID string, calculation domain.FinanceCalculation) (*domain.FinanceRecord, error) {
	return create(ctx, s, baseID, domain.TableFinance, calculation)
}

func (s *Service) DeleteFinanceCalculation(ctx context.Context, baseID, recordID string) error {
	return s.remove(ctx, baseID, domain.TableFinance, recordID)
}
