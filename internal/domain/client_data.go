package domain

import "time"

// ClientData is the snapshot of one client's base the aggregations run over.
type ClientData struct {
	Leads               []LeadRecord        `json:"leads"`
	Appointments        []AppointmentRecord `json:"appointments"`
	FinanceCalculations []FinanceRecord     `json:"finance_calculations"`
	FetchedAt           time.Time           `json:"fetched_at"`
}
