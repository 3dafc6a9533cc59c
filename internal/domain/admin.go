package domain

// ClientTotals is the per-client input to the admin leaderboard.
type ClientTotals struct {
	ClientID   int     `json:"client_id"`
	ClientName string  `json:"client_name"`
	Leads      int     `json:"leads"`
	Bookings   int     `json:"bookings"`
	Income     float64 `json:"income"`
}

type ClientRankingItem struct {
	ClientTotals
	Position int `json:"position"`
}

type AdminOverview struct {
	TotalClients  int                 `json:"total_clients"`
	ActiveClients int                 `json:"active_clients"`
	TotalLeads    int                 `json:"total_leads"`
	TotalBookings int                 `json:"total_bookings"`
	TotalRevenue  float64             `json:"total_revenue"`
	Ranking       []ClientRankingItem `json:"ranking"`
	// FailedClients lists clients whose base could not be read.
	FailedClients []int `json:"failed_clients,omitempty"`
}
