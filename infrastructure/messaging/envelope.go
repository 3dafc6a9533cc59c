package messaging

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vfg2006/dealer-crm-api/pkg/log"
)

// Event types, also used as routing keys.
const (
	EventLeadCreated          = "leads.created.v1"
	EventLeadUpdated          = "leads.updated.v1"
	EventLeadDeleted          = "leads.deleted.v1"
	EventAppointmentBooked    = "appointments.booked.v1"
	EventAppointmentCancelled = "appointments.cancelled.v1"
	EventFinanceCalculated    = "finance.calculated.v1"
	EventFinanceDeleted       = "finance.deleted.v1"
)

type Meta struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Time          time.Time `json:"time"`
	CorrelationID *string   `json:"correlation_id,omitempty"`
	Producer      string    `json:"producer"`
}

type Envelope struct {
	Meta Meta `json:"meta"`
	Data any  `json:"data"`
}

// RecordEvent is the payload of every record-level event.
type RecordEvent struct {
	BaseID   string `json:"base_id"`
	Table    string `json:"table"`
	RecordID string `json:"record_id"`
	Fields   any    `json:"fields,omitempty"`
}

// NewEnvelope stamps data with a fresh ID and the request correlation ID.
// The producer is filled in by the publisher.
func NewEnvelope(ctx context.Context, eventType string, data any) Envelope {
	env := Envelope{
		Meta: Meta{
			ID:   uuid.NewString(),
			Type: eventType,
			Time: time.Now().UTC(),
		},
		Data: data,
	}

	if cid := log.GetCorrelationID(ctx); cid != "" {
		env.Meta.CorrelationID = &cid
	}

	return env
}

// Emit publishes an event and only logs a failure. Callers never fail a
// request because the broker is unavailable.
func Emit(ctx context.Context, publisher Publisher, eventType string, data any) {
	if publisher == nil {
		return
	}

	if err := publisher.Publish(ctx, eventType, NewEnvelope(ctx, eventType, data)); err != nil {
		log.ForContext(ctx).WithError(err).WithField("event_type", eventType).Warn("Could not publish event")
	}
}
