package domain

import "time"

type Lead struct {
	LeadID      int    `json:"Lead ID,omitempty"`
	FullName    string `json:"Full Name,omitempty"`
	Email       string `json:"Email,omitempty"`
	Phone       string `json:"Phone,omitempty"`
	CarInterest string `json:"Car Interest,omitempty"`
	Source      string `json:"Source,omitempty"`
	CreatedDate string `json:"Created Date,omitempty"`
	Notes       string `json:"Notes,omitempty"`
}

type LeadRecord = Record[Lead]

// CreatedAt prefers the explicit Created Date column and falls back to the
// record creation time.
func (r LeadRecord) CreatedAt() time.Time {
	if t, ok := ParseTimestamp(r.Fields.CreatedDate); ok {
		return t
	}
	return r.CreatedTime
}

type UpdateLeadRequest struct {
	FullName    *string `json:"full_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	CarInterest *string `json:"car_interest"`
	Source      *string `json:"source"`
	Notes       *string `json:"notes"`
}

type LeadFilters struct {
	Search string
	Source string
}

type LeadListItem struct {
	LeadRecord
	Status string `json:"status"`
}

type LeadStats struct {
	Total     int `json:"total"`
	Converted int `json:"converted"`
	Pending   int `json:"pending"`
	ThisMonth int `json:"this_month"`
}

type LeadList struct {
	Items []LeadListItem `json:"items"`
	Stats LeadStats      `json:"stats"`
}

const (
	LeadStatusConverted = "Converted"
	LeadStatusPending   = "Pending"
)

type CreateLeadRequest struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CarInterest string `json:"car_interest"`
	Source      string `json:"source"`
	Notes       string `json:"notes"`
}
