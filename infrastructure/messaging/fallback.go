package messaging

import (
	"context"

	"github.com/sirupsen/logrus"
)

type fallbackPublisher struct {
	producer string
}

// NewFallbackPublisher logs events at debug level and drops them.
func NewFallbackPublisher(producer string) Publisher {
	return &fallbackPublisher{producer: producer}
}

func (p *fallbackPublisher) Publish(_ context.Context, key string, msg Envelope) error {
	logrus.WithFields(logrus.Fields{
		"key":      key,
		"event_id": msg.Meta.ID,
		"producer": p.producer,
	}).Debug("Event dropped, publishing disabled")
	return nil
}

func (p *fallbackPublisher) Close() error {
	return nil
}
