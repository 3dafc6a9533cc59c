package analyzing

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/dealer-crm-api/infrastructure/integrator/airtable"
	"github.com/vfg2006/dealer-crm-api/infrastructure/repository"
	"github.com/vfg2006/dealer-crm-api/internal/domain"
	"github.com/vfg2006/dealer-crm-api/pkg/log"
	"github.com/vfg2006/dealer-crm-api/pkg/utils"
	"golang.org/x/sync/errgroup"
)

// overviewConcurrency bounds how many client bases the admin overview reads
// at once.
const overviewConcurrency = 4

type Analyzer interface {
	GetDashboard(ctx context.Context, baseID string, now time.Time) (*domain.DashboardSummary, error)
	GetAnalytics(ctx context.Context, baseID string) (*domain.AnalyticsSummary, error)
	GetAdminOverview(ctx context.Context) (*domain.AdminOverview, error)
}

type Service struct {
	store    airtable.RecordStore
	userRepo repository.UserRepository
}

func NewService(store airtable.RecordStore, userRepo repository.UserRepository) Analyzer {
	return &Service{
		store:    store,
		userRepo: userRepo,
	}
}

func (s *Service) GetDashboard(ctx context.Context, baseID string, now time.Time) (*domain.DashboardSummary, error) {
	data, err := s.store.GetClientData(ctx, baseID)
	if err != nil {
		return nil, err
	}

	return BuildDashboard(data, now), nil
}

func (s *Service) GetAnalytics(ctx context.Context, baseID string) (*domain.AnalyticsSummary, error) {
	data, err := s.store.GetClientData(ctx, baseID)
	if err != nil {
		return nil, err
	}

	return BuildAnalytics(data), nil
}

func BuildDashboard(data *domain.ClientData, now time.Time) *domain.DashboardSummary {
	return &domain.DashboardSummary{
		TotalIncome:          utils.RoundWithTwoDecimalPlace(TotalIncome(data.FinanceCalculations)),
		TotalLeads:           len(data.Leads),
		TotalBookings:        len(data.Appointments),
		ConversionRate:       utils.RoundWithOneDecimalPlace(ConversionRate(data.Leads, data.Appointments)),
		LeadSources:          LeadSources(data.Leads),
		AppointmentChannels:  AppointmentChannels(data.Appointments),
		UpcomingAppointments: UpcomingAppointments(data.Appointments, now, DefaultUpcomingLimit),
	}
}

func BuildAnalytics(data *domain.ClientData) *domain.AnalyticsSummary {
	return &domain.AnalyticsSummary{
		ConversionRate:   utils.RoundWithOneDecimalPlace(ConversionRate(data.Leads, data.Appointments)),
		AverageDealValue: utils.RoundWithTwoDecimalPlace(AverageDealValue(data.FinanceCalculations)),
		TopChannel:       TopChannel(data.Appointments),
		SourceConversion: SourceConversion(data.Leads, data.Appointments),
		MonthlyTrend:     MonthlyTrend(data.Leads, data.Appointments),
	}
}

// GetAdminOverview totals every active client's snapshot and ranks clients
// by income. A client whose base cannot be read is reported in FailedClients
// and left out of the totals.
func (s *Service) GetAdminOverview(ctx context.Context) (*domain.AdminOverview, error) {
	logger := log.ForContext(ctx)

	clients, err := s.userRepo.ListUsersByRole(ctx, domain.RoleClient)
	if err != nil {
		return nil, errors.Wrap(err, "list clients")
	}

	overview := &domain.AdminOverview{
		TotalClients: len(clients),
		Ranking:      make([]domain.ClientRankingItem, 0),
	}

	active := make([]*domain.User, 0, len(clients))
	for _, c := range clients {
		if c.Active {
			overview.ActiveClients++
			if c.IsClient() {
				active = append(active, c)
			}
		}
	}

	var (
		mu     sync.Mutex
		totals = make([]domain.ClientTotals, len(active))
		loaded = make([]bool, len(active))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(overviewConcurrency)

	for i, client := range active {
		g.Go(func() error {
			data, err := s.store.GetClientData(gctx, *client.BaseID)
			if err != nil {
				logger.WithError(err).WithField("client_id", client.ID).Warn("Skipping client in admin overview")
				mu.Lock()
				overview.FailedClients = append(overview.FailedClients, client.ID)
				mu.Unlock()
				return nil
			}

			totals[i] = domain.ClientTotals{
				ClientID:   client.ID,
				ClientName: client.Name,
				Leads:      len(data.Leads),
				Bookings:   len(data.Appointments),
				Income:     utils.RoundWithTwoDecimalPlace(TotalIncome(data.FinanceCalculations)),
			}
			loaded[i] = true
			return nil
		})
	}

	// Per-client failures are absorbed above.
	_ = g.Wait()
	sort.Ints(overview.FailedClients)

	ranked := make([]domain.ClientTotals, 0, len(active))
	for i, t := range totals {
		if !loaded[i] {
			continue
		}
		overview.TotalLeads += t.Leads
		overview.TotalBookings += t.Bookings
		overview.TotalRevenue += t.Income
		ranked = append(ranked, t)
	}

	overview.TotalRevenue = utils.RoundWithTwoDecimalPlace(overview.TotalRevenue)
	overview.Ranking = RankClients(ranked)

	return overview, nil
}
