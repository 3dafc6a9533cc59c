package domain

type NameValue struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type SourcePerformance struct {
	Source         string  `json:"source"`
	TotalLeads     int     `json:"total_leads"`
	ConvertedLeads int     `json:"converted_leads"`
	ConversionRate float64 `json:"conversion_rate"`
	// DisplayRate is ConversionRate rounded to a whole percent for charts.
	DisplayRate int `json:"display_rate"`
}

type MonthlyTrendPoint struct {
	Month        string `json:"month"`
	Leads        int    `json:"leads"`
	Appointments int    `json:"appointments"`
}

type DashboardSummary struct {
	TotalIncome          float64             `json:"total_income"`
	TotalLeads           int                 `json:"total_leads"`
	TotalBookings        int                 `json:"total_bookings"`
	ConversionRate       float64             `json:"conversion_rate"`
	LeadSources          []NameValue         `json:"lead_sources"`
	AppointmentChannels  []NameValue         `json:"appointment_channels"`
	UpcomingAppointments []AppointmentRecord `json:"upcoming_appointments"`
}

type AnalyticsSummary struct {
	ConversionRate   float64             `json:"conversion_rate"`
	AverageDealValue float64             `json:"average_deal_value"`
	TopChannel       string              `json:"top_channel"`
	SourceConversion []SourcePerformance `json:"source_conversion"`
	MonthlyTrend     []MonthlyTrendPoint `json:"monthly_trend"`
}
