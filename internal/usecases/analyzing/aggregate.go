package analyzing

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/vfg2006/dealer-crm-api/internal/domain"
	"github.com/vfg2006/dealer-crm-api/pkg/utils"
)

// NoTopChannel is reported when there are no appointments to rank.
const NoTopChannel = "N/A"

// DefaultUpcomingLimit caps the dashboard's upcoming appointments list.
const DefaultUpcomingLimit = 5

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// ConversionRate is bookings per lead as a percentage. Appointments are not
// required to originate from a lead, so the result may exceed 100.
func ConversionRate(leads []domain.LeadRecord, appointments []domain.AppointmentRecord) float64 {
	if len(leads) == 0 {
		return 0
	}
	return float64(len(appointments)) / float64(len(leads)) * 100
}

func TotalIncome(calculations []domain.FinanceRecord) float64 {
	var total float64
	for _, c := range calculations {
		total += c.Fields.TotalCost
	}
	return total
}

func AverageDealValue(calculations []domain.FinanceRecord) float64 {
	if len(calculations) == 0 {
		return 0
	}
	return TotalIncome(calculations) / float64(len(calculations))
}

// GroupByKey counts items per key, keeping keys in first-seen order. Blank
// keys are counted under domain.UnknownChannel.
func GroupByKey[T any](items []T, key func(T) string) []domain.NameValue {
	groups := make([]domain.NameValue, 0)
	index := make(map[string]int)

	for _, item := range items {
		k := strings.TrimSpace(key(item))
		if k == "" {
			k = domain.UnknownChannel
		}

		if i, ok := index[k]; ok {
			groups[i].Value++
			continue
		}

		index[k] = len(groups)
		groups = append(groups, domain.NameValue{Name: k, Value: 1})
	}

	return groups
}

func LeadSources(leads []domain.LeadRecord) []domain.NameValue {
	return GroupByKey(leads, func(l domain.LeadRecord) string { return l.Fields.Source })
}

func AppointmentChannels(appointments []domain.AppointmentRecord) []domain.NameValue {
	return GroupByKey(appointments, func(a domain.AppointmentRecord) string { return a.Fields.Channel })
}

// TopChannel returns the channel with the most appointments. Ties go to the
// channel seen first.
func TopChannel(appointments []domain.AppointmentRecord) string {
	if len(appointments) == 0 {
		return NoTopChannel
	}

	top := domain.NameValue{}
	for _, group := range AppointmentChannels(appointments) {
		if group.Value > top.Value {
			top = group
		}
	}

	return top.Name
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AppointmentEmails collects the non-empty emails of the appointments.
func AppointmentEmails(appointments []domain.AppointmentRecord) map[string]struct{} {
	emails := make(map[string]struct{}, len(appointments))
	for _, a := range appointments {
		if e := normalizeEmail(a.Fields.Email); e != "" {
			emails[e] = struct{}{}
		}
	}
	return emails
}

// LeadConverted reports whether the lead's email shows up among the booked
// emails. A lead without an email never counts as converted.
func LeadConverted(lead domain.LeadRecord, bookedEmails map[string]struct{}) bool {
	e := normalizeEmail(lead.Fields.Email)
	if e == "" {
		return false
	}
	_, ok := bookedEmails[e]
	return ok
}

// SourceConversion reports per-channel conversion for the fixed channels, in
// display order.
func SourceConversion(leads []domain.LeadRecord, appointments []domain.AppointmentRecord) []domain.SourcePerformance {
	booked := AppointmentEmails(appointments)
	channels := domain.Channels()
	result := make([]domain.SourcePerformance, 0, len(channels))

	for _, channel := range channels {
		perf := domain.SourcePerformance{Source: string(channel)}

		for _, lead := range leads {
			if strings.TrimSpace(lead.Fields.Source) != string(channel) {
				continue
			}
			perf.TotalLeads++
			if LeadConverted(lead, booked) {
				perf.ConvertedLeads++
			}
		}

		if perf.TotalLeads > 0 {
			perf.ConversionRate = float64(perf.ConvertedLeads) / float64(perf.TotalLeads) * 100
		}
		perf.DisplayRate = int(math.Round(perf.ConversionRate))

		result = append(result, perf)
	}

	return result
}

// MonthlyTrend buckets leads and appointments by the calendar month (UTC) of
// their creation time. Years are folded together and empty months dropped.
func MonthlyTrend(leads []domain.LeadRecord, appointments []domain.AppointmentRecord) []domain.MonthlyTrendPoint {
	var buckets [12]domain.MonthlyTrendPoint
	for i := range buckets {
		buckets[i].Month = monthNames[i]
	}

	for _, l := range leads {
		buckets[l.CreatedTime.UTC().Month()-1].Leads++
	}
	for _, a := range appointments {
		buckets[a.CreatedTime.UTC().Month()-1].Appointments++
	}

	trend := make([]domain.MonthlyTrendPoint, 0, len(buckets))
	for _, b := range buckets {
		if b.Leads > 0 || b.Appointments > 0 {
			trend = append(trend, b)
		}
	}

	return trend
}

// UpcomingAppointments returns appointments scheduled strictly after now,
// soonest first. Appointments without a parseable date are left out.
func UpcomingAppointments(appointments []domain.AppointmentRecord, now time.Time, limit int) []domain.AppointmentRecord {
	upcoming := make([]domain.AppointmentRecord, 0)
	for _, a := range appointments {
		if at, ok := a.ScheduledAt(); ok && at.After(now) {
			upcoming = append(upcoming, a)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		ti, _ := upcoming[i].ScheduledAt()
		tj, _ := upcoming[j].ScheduledAt()
		return ti.Before(tj)
	})

	if limit > 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}

	return upcoming
}

func LeadStats(leads []domain.LeadRecord, appointments []domain.AppointmentRecord, now time.Time) domain.LeadStats {
	booked := AppointmentEmails(appointments)
	stats := domain.LeadStats{Total: len(leads)}
	converted := make(map[string]struct{})

	for _, l := range leads {
		if LeadConverted(l, booked) {
			converted[normalizeEmail(l.Fields.Email)] = struct{}{}
		}
		if utils.SameMonth(now, l.CreatedAt()) {
			stats.ThisMonth++
		}
	}
	// duplicate leads for one booked email convert once
	stats.Converted = len(converted)
	stats.Pending = stats.Total - stats.Converted

	return stats
}

// AppointmentStatus classifies an appointment against now: past days are
// Completed, the current day is Today, anything later is Upcoming.
func AppointmentStatus(appointment domain.AppointmentRecord, now time.Time) string {
	at := appointment.ScheduledOrCreatedAt()
	switch {
	case utils.SameDay(now, at):
		return domain.AppointmentStatusToday
	case at.Before(now):
		return domain.AppointmentStatusCompleted
	default:
		return domain.AppointmentStatusUpcoming
	}
}

func AppointmentStats(appointments []domain.AppointmentRecord, now time.Time) domain.AppointmentStats {
	stats := domain.AppointmentStats{Total: len(appointments)}
	week := now.AddDate(0, 0, 7)

	for _, a := range appointments {
		at := a.ScheduledOrCreatedAt()
		if utils.SameDay(now, at) {
			stats.Today++
		}
		if at.After(now) && !at.After(week) {
			stats.Upcoming++
		}
		if utils.SameMonth(now, at) {
			stats.ThisMonth++
		}
	}

	return stats
}

// RankClients orders clients by income, highest first, keeping the input
// order between equal incomes. Positions start at 1.
func RankClients(totals []domain.ClientTotals) []domain.ClientRankingItem {
	sorted := make([]domain.ClientTotals, len(totals))
	copy(sorted, totals)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Income > sorted[j].Income
	})

	ranking := make([]domain.ClientRankingItem, len(sorted))
	for i, t := range sorted {
		ranking[i] = domain.ClientRankingItem{ClientTotals: t, Position: i + 1}
	}

	return ranking
}
