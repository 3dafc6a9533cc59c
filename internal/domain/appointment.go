package domain

import "time"

type Appointment struct {
	BookingID int    `json:"Booking ID,omitempty"`
	FullName  string `json:"Full Name,omitempty"`
	Email     string `json:"Email,omitempty"`
	Phone     string `json:"Phone,omitempty"`
	Vehicle   string `json:"Vehicle,omitempty"`
	DateTime  string `json:"Date & Time,omitempty"`
	Channel   string `json:"Channel,omitempty"`
	Created   string `json:"Created,omitempty"`
}

type AppointmentRecord = Record[Appointment]

// ScheduledAt returns the parsed Date & Time column.
func (r AppointmentRecord) ScheduledAt() (time.Time, bool) {
	return ParseTimestamp(r.Fields.DateTime)
}

// ScheduledOrCreatedAt falls back to the record creation time when the
// appointment carries no usable Date & Time.
func (r AppointmentRecord) ScheduledOrCreatedAt() time.Time {
	if t, ok := r.ScheduledAt(); ok {
		return t
	}
	return r.CreatedTime
}

type AppointmentFilters struct {
	Search  string
	Channel string
}

const (
	AppointmentStatusCompleted = "Completed"
	AppointmentStatusToday     = "Today"
	AppointmentStatusUpcoming  = "Upcoming"
)

type AppointmentListItem struct {
	AppointmentRecord
	Status string `json:"status"`
}

type AppointmentStats struct {
	Total     int `json:"total"`
	Today     int `json:"today"`
	Upcoming  int `json:"upcoming"`
	ThisMonth int `json:"this_month"`
}

type AppointmentList struct {
	Items []AppointmentListItem `json:"items"`
	Stats AppointmentStats      `json:"stats"`
}

type BookAppointmentRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Vehicle  string `json:"vehicle"`
	DateTime string `json:"date_time"`
	Channel  string `json:"channel"`
}

// BookFromLeadRequest carries what a lead row does not already know.
type BookFromLeadRequest struct {
	DateTime string `json:"date_time"`
	Vehicle  string `json:"vehicle"`
	Channel  string `json:"channel"`
}
