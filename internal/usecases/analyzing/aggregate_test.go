package analyzing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/dealer-crm-api/internal/domain"
)

var refNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func lead(id, email, source string, created time.Time) domain.LeadRecord {
	return domain.LeadRecord{
		ID:          id,
		CreatedTime: created,
		Fields:      domain.Lead{FullName: "Lead " + id, Email: email, Source: source},
	}
}

func appointment(id, email, channel, dateTime string, created time.Time) domain.AppointmentRecord {
	return domain.AppointmentRecord{
		ID:          id,
		CreatedTime: created,
		Fields:      domain.Appointment{FullName: "Booking " + id, Email: email, Channel: channel, DateTime: dateTime},
	}
}

func calculation(total float64) domain.FinanceRecord {
	return domain.FinanceRecord{Fields: domain.FinanceCalculation{TotalCost: total}}
}

func TestEmptyInputs(t *testing.T) {
	assert.Equal(t, 0.0, ConversionRate(nil, nil))
	assert.Equal(t, 0.0, TotalIncome(nil))
	assert.Equal(t, 0.0, AverageDealValue(nil))
	assert.Empty(t, LeadSources(nil))
	assert.Empty(t, AppointmentChannels(nil))
	assert.Equal(t, NoTopChannel, TopChannel(nil))
	assert.Empty(t, MonthlyTrend(nil, nil))
	assert.Empty(t, UpcomingAppointments(nil, refNow, DefaultUpcomingLimit))
	assert.Empty(t, RankClients(nil))

	conversion := SourceConversion(nil, nil)
	require.Len(t, conversion, 4)
	for _, perf := range conversion {
		assert.Zero(t, perf.TotalLeads)
		assert.Zero(t, perf.ConversionRate)
	}
}

func TestConversionRate(t *testing.T) {
	leads := []domain.LeadRecord{
		lead("1", "a@x.com", "Website", refNow),
		lead("2", "b@x.com", "Website", refNow),
		lead("3", "c@x.com", "Website", refNow),
		lead("4", "d@x.com", "Website", refNow),
	}

	tests := []struct {
		name         string
		leads        []domain.LeadRecord
		appointments []domain.AppointmentRecord
		want         float64
	}{
		{name: "no leads", leads: nil, appointments: []domain.AppointmentRecord{appointment("a", "", "", "", refNow)}, want: 0},
		{name: "one of four", leads: leads, appointments: []domain.AppointmentRecord{appointment("a", "", "", "", refNow)}, want: 25},
		{
			name:  "more bookings than leads",
			leads: leads[:1],
			appointments: []domain.AppointmentRecord{
				appointment("a", "", "", "", refNow),
				appointment("b", "", "", "", refNow),
			},
			want: 200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConversionRate(tt.leads, tt.appointments))
		})
	}
}

func TestIncome(t *testing.T) {
	calcs := []domain.FinanceRecord{calculation(1000), calculation(2500.5), calculation(499.5)}

	assert.Equal(t, 4000.0, TotalIncome(calcs))
	assert.InDelta(t, 1333.33, AverageDealValue(calcs), 0.01)
}

func TestGroupByKey(t *testing.T) {
	leads := []domain.LeadRecord{
		lead("1", "", "WhatsApp", refNow),
		lead("2", "", "Website", refNow),
		lead("3", "", "WhatsApp", refNow),
		lead("4", "", "  ", refNow),
		lead("5", "", "", refNow),
	}

	groups := LeadSources(leads)

	assert.Equal(t, []domain.NameValue{
		{Name: "WhatsApp", Value: 2},
		{Name: "Website", Value: 1},
		{Name: domain.UnknownChannel, Value: 2},
	}, groups)

	total := 0
	for _, g := range groups {
		total += g.Value
	}
	assert.Equal(t, len(leads), total)
}

func TestTopChannel(t *testing.T) {
	tests := []struct {
		name         string
		appointments []domain.AppointmentRecord
		want         string
	}{
		{
			name: "clear winner",
			appointments: []domain.AppointmentRecord{
				appointment("1", "", "Instagram", "", refNow),
				appointment("2", "", "Facebook", "", refNow),
				appointment("3", "", "Facebook", "", refNow),
			},
			want: "Facebook",
		},
		{
			name: "tie goes to first seen",
			appointments: []domain.AppointmentRecord{
				appointment("1", "", "Instagram", "", refNow),
				appointment("2", "", "Facebook", "", refNow),
				appointment("3", "", "Facebook", "", refNow),
				appointment("4", "", "Instagram", "", refNow),
			},
			want: "Instagram",
		},
		{
			name: "blank channel counts as unknown",
			appointments: []domain.AppointmentRecord{
				appointment("1", "", "", "", refNow),
			},
			want: domain.UnknownChannel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TopChannel(tt.appointments))
		})
	}
}

func TestLeadConverted(t *testing.T) {
	booked := AppointmentEmails([]domain.AppointmentRecord{
		appointment("1", " Ana@Example.com ", "", "", refNow),
		appointment("2", "", "", "", refNow),
	})

	assert.Len(t, booked, 1)
	assert.True(t, LeadConverted(lead("1", "ana@example.com", "", refNow), booked))
	assert.False(t, LeadConverted(lead("2", "bob@example.com", "", refNow), booked))
	assert.False(t, LeadConverted(lead("3", "", "", refNow), booked))
}

func TestSourceConversion(t *testing.T) {
	leads := []domain.LeadRecord{
		lead("1", "a@x.com", "Website", refNow),
		lead("2", "b@x.com", "Website", refNow),
		lead("3", "c@x.com", "Website", refNow),
		lead("4", "d@x.com", "WhatsApp", refNow),
		lead("5", "e@x.com", "Walk-in", refNow),
	}
	appointments := []domain.AppointmentRecord{
		appointment("1", "a@x.com", "Website", "", refNow),
		appointment("2", "D@X.COM", "WhatsApp", "", refNow),
		appointment("3", "e@x.com", "Website", "", refNow),
	}

	result := SourceConversion(leads, appointments)
	require.Len(t, result, 4)

	assert.Equal(t, "Website", result[0].Source)
	assert.Equal(t, 3, result[0].TotalLeads)
	assert.Equal(t, 1, result[0].ConvertedLeads)
	assert.InDelta(t, 33.333, result[0].ConversionRate, 0.001)
	assert.Equal(t, 33, result[0].DisplayRate)

	assert.Equal(t, "WhatsApp", result[1].Source)
	assert.Equal(t, 100.0, result[1].ConversionRate)

	assert.Equal(t, "Instagram", result[2].Source)
	assert.Equal(t, "Facebook", result[3].Source)

	for _, perf := range result {
		assert.GreaterOrEqual(t, perf.ConversionRate, 0.0)
		assert.LessOrEqual(t, perf.ConversionRate, 100.0)
	}
}

func TestMonthlyTrend(t *testing.T) {
	leads := []domain.LeadRecord{
		lead("1", "", "", time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)),
		lead("2", "", "", time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)),
		lead("3", "", "", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)),
	}
	appointments := []domain.AppointmentRecord{
		appointment("1", "", "", "", time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)),
		appointment("2", "", "", "", time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)),
	}

	trend := MonthlyTrend(leads, appointments)

	assert.Equal(t, []domain.MonthlyTrendPoint{
		{Month: "Jan", Leads: 1, Appointments: 0},
		{Month: "Mar", Leads: 2, Appointments: 1},
		{Month: "Nov", Leads: 0, Appointments: 1},
	}, trend)
}

func TestUpcomingAppointments(t *testing.T) {
	appointments := []domain.AppointmentRecord{
		appointment("past", "", "", "2025-06-10T10:00:00Z", refNow),
		appointment("far", "", "", "2025-08-01T09:00:00Z", refNow),
		appointment("soon", "", "", "2025-06-16T09:00", refNow),
		appointment("nodate", "", "", "", refNow),
		appointment("garbage", "", "", "next tuesday", refNow),
		appointment("now", "", "", "2025-06-15T12:00:00Z", refNow),
		appointment("mid", "", "", "2025-07-01", refNow),
	}

	t.Run("sorted soonest first", func(t *testing.T) {
		upcoming := UpcomingAppointments(appointments, refNow, 0)

		ids := make([]string, len(upcoming))
		for i, a := range upcoming {
			ids[i] = a.ID
		}
		assert.Equal(t, []string{"soon", "mid", "far"}, ids)
	})

	t.Run("limited", func(t *testing.T) {
		upcoming := UpcomingAppointments(appointments, refNow, 2)
		require.Len(t, upcoming, 2)
		assert.Equal(t, "soon", upcoming[0].ID)
		assert.Equal(t, "mid", upcoming[1].ID)
	})
}

func TestLeadStats(t *testing.T) {
	leads := []domain.LeadRecord{
		lead("1", "a@x.com", "", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
		lead("2", "b@x.com", "", time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)),
		lead("3", "", "", time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)),
	}
	// explicit Created Date wins over the record time
	leads[1].Fields.CreatedDate = "2025-06-02"

	appointments := []domain.AppointmentRecord{
		appointment("1", "A@x.com", "", "", refNow),
	}

	stats := LeadStats(leads, appointments, refNow)

	assert.Equal(t, domain.LeadStats{Total: 3, Converted: 1, Pending: 2, ThisMonth: 3}, stats)
}

func TestAppointmentStatus(t *testing.T) {
	tests := []struct {
		name     string
		dateTime string
		created  time.Time
		want     string
	}{
		{name: "earlier today", dateTime: "2025-06-15T08:00:00Z", want: domain.AppointmentStatusToday},
		{name: "later today", dateTime: "2025-06-15T18:00:00Z", want: domain.AppointmentStatusToday},
		{name: "yesterday", dateTime: "2025-06-14T18:00:00Z", want: domain.AppointmentStatusCompleted},
		{name: "tomorrow", dateTime: "2025-06-16T09:00:00Z", want: domain.AppointmentStatusUpcoming},
		{name: "no date falls back to created", created: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), want: domain.AppointmentStatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := appointment("1", "", "", tt.dateTime, tt.created)
			assert.Equal(t, tt.want, AppointmentStatus(a, refNow))
		})
	}
}

func TestAppointmentStats(t *testing.T) {
	appointments := []domain.AppointmentRecord{
		appointment("1", "", "", "2025-06-15T09:00:00Z", refNow),
		appointment("2", "", "", "2025-06-18T09:00:00Z", refNow),
		appointment("3", "", "", "2025-06-22T12:00:00Z", refNow),
		appointment("4", "", "", "2025-06-25T09:00:00Z", refNow),
		appointment("5", "", "", "2025-05-30T09:00:00Z", refNow),
	}

	stats := AppointmentStats(appointments, refNow)

	assert.Equal(t, domain.AppointmentStats{Total: 5, Today: 1, Upcoming: 2, ThisMonth: 4}, stats)
}

func TestRankClients(t *testing.T) {
	totals := []domain.ClientTotals{
		{ClientID: 1, ClientName: "North", Income: 1000},
		{ClientID: 2, ClientName: "South", Income: 5000},
		{ClientID: 3, ClientName: "East", Income: 1000},
		{ClientID: 4, ClientName: "West", Income: 0},
	}

	ranking := RankClients(totals)
	require.Len(t, ranking, 4)

	ids := make([]int, len(ranking))
	for i, r := range ranking {
		ids[i] = r.ClientID
		assert.Equal(t, i+1, r.Position)
	}
	assert.Equal(t, []int{2, 1, 3, 4}, ids)

	// input left untouched
	assert.Equal(t, 1, totals[0].ClientID)
}

func TestLeadStats_DuplicateLeadsConvertOnce(t *testing.T) {
	leads := []domain.LeadRecord{
		lead("1", "a@x.com", "", refNow),
		lead("2", " A@X.com", "", refNow),
		lead("3", "b@x.com", "", refNow),
	}
	appointments := []domain.AppointmentRecord{
		appointment("1", "a@x.com", "", "", refNow),
	}

	stats := LeadStats(leads, appointments, refNow)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Converted)
	assert.Equal(t, 2, stats.Pending)
}

func TestSourceConversion_AgreesWithLeadSources(t *testing.T) {
	leads := []domain.LeadRecord{
		lead("1", "a@x.com", " Website", refNow),
		lead("2", "b@x.com", "Website ", refNow),
	}
	appointments := []domain.AppointmentRecord{
		appointment("1", "a@x.com", "Website", "", refNow),
	}

	sources := LeadSources(leads)
	require.Len(t, sources, 1)
	assert.Equal(t, domain.NameValue{Name: "Website", Value: 2}, sources[0])

	conversion := SourceConversion(leads, appointments)
	require.NotEmpty(t, conversion)
	assert.Equal(t, "Website", conversion[0].Source)
	assert.Equal(t, 2, conversion[0].TotalLeads)
	assert.Equal(t, 1, conversion[0].ConvertedLeads)
	assert.Equal(t, 50, conversion[0].DisplayRate)
}

func TestAggregations_SameInputSameOutput(t *testing.T) {
	leads := []domain.LeadRecord{
		lead("1", "a@x.com", "Website", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
		lead("2", "b@x.com", "WhatsApp", time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)),
		lead("3", "a@x.com", "", time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)),
	}
	appointments := []domain.AppointmentRecord{
		appointment("1", "a@x.com", "Instagram", "2025-06-20T10:00:00Z", refNow),
		appointment("2", "c@x.com", "Facebook", "2025-06-15T09:00:00Z", refNow),
		appointment("3", "", "", "2025-05-01T09:00:00Z", refNow),
	}
	calcs := []domain.FinanceRecord{calculation(1000.25), calculation(2000.5)}
	totals := []domain.ClientTotals{
		{ClientID: 1, ClientName: "North", Income: 10},
		{ClientID: 2, ClientName: "South", Income: 10},
	}

	tests := []struct {
		name string
		run  func() any
	}{
		{name: "conversion rate", run: func() any { return ConversionRate(leads, appointments) }},
		{name: "total income", run: func() any { return TotalIncome(calcs) }},
		{name: "average deal value", run: func() any { return AverageDealValue(calcs) }},
		{name: "lead sources", run: func() any { return LeadSources(leads) }},
		{name: "appointment channels", run: func() any { return AppointmentChannels(appointments) }},
		{name: "top channel", run: func() any { return TopChannel(appointments) }},
		{name: "source conversion", run: func() any { return SourceConversion(leads, appointments) }},
		{name: "monthly trend", run: func() any { return MonthlyTrend(leads, appointments) }},
		{name: "upcoming", run: func() any { return UpcomingAppointments(appointments, refNow, DefaultUpcomingLimit) }},
		{name: "lead stats", run: func() any { return LeadStats(leads, appointments, refNow) }},
		{name: "appointment stats", run: func() any { return AppointmentStats(appointments, refNow) }},
		{name: "rank clients", run: func() any { return RankClients(totals) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.run(), tt.run())
		})
	}
}
