package domain

import (
	"strings"
	"time"
)

// Table names inside a client's base.
const (
	TableLeads        = "Leads"
	TableAppointments = "Appointments"
	TableFinance      = "Finance Calculator"
)

// Record is the envelope every row of the record store comes wrapped in.
type Record[T any] struct {
	ID          string    `json:"id"`
	CreatedTime time.Time `json:"createdTime"`
	Fields      T         `json:"fields"`
}

type Channel string

const (
	ChannelWebsite   Channel = "Website"
	ChannelWhatsApp  Channel = "WhatsApp"
	ChannelInstagram Channel = "Instagram"
	ChannelFacebook  Channel = "Facebook"

	// UnknownChannel labels records whose source or channel is blank.
	UnknownChannel = "Unknown"
)

// Channels returns the fixed acquisition channels in display order.
func Channels() []Channel {
	return []Channel{ChannelWebsite, ChannelWhatsApp, ChannelInstagram, ChannelFacebook}
}

func (c Channel) IsValid() bool {
	for _, known := range Channels() {
		if c == known {
			return true
		}
	}
	return false
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateTime,
	time.DateOnly,
}

// ParseTimestamp accepts the timestamp shapes found in the store: full ISO
// strings, datetime-local values and bare dates. Values without a zone are UTC.
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
