package messaging

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/dealer-crm-api/internal/config"
	"github.com/vfg2006/dealer-crm-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxDialDelay = 60 * time.Second

type Publisher interface {
	Publish(ctx context.Context, key string, msg Envelope) error
	Close() error
}

type rabbitPublisher struct {
	conn     *amqp091.Connection
	exchange string
	producer string
	mu       sync.Mutex
	channel  *amqp091.Channel
}

// New connects to the broker when events are enabled. When they are
// disabled, or the broker cannot be reached, it returns the fallback
// publisher so the API keeps serving.
func New(ctx context.Context, cfg config.Events) Publisher {
	producer := cfg.Producer
	if suffix, err := utils.GenerateID(6); err == nil {
		producer = fmt.Sprintf("%s-%s", cfg.Producer, suffix)
	}

	if !cfg.Enabled {
		logrus.Info("Event publishing disabled by configuration")
		return NewFallbackPublisher(producer)
	}

	publisher, err := NewRabbitPublisher(ctx, cfg, producer)
	if err != nil {
		logrus.WithError(err).Error("Could not connect to the event broker, falling back to log-only events")
		return NewFallbackPublisher(producer)
	}

	return publisher
}

func NewRabbitPublisher(ctx context.Context, cfg config.Events, producer string) (Publisher, error) {
	conn, err := dialWithRetry(ctx, cfg)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "error opening channel")
	}

	if err := ch.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "error declaring exchange")
	}

	logrus.WithFields(logrus.Fields{
		"exchange": cfg.Exchange,
		"producer": producer,
	}).Info("Event publisher connected")

	return &rabbitPublisher{
		conn:     conn,
		exchange: cfg.Exchange,
		producer: producer,
		channel:  ch,
	}, nil
}

func dialWithRetry(ctx context.Context, cfg config.Events) (*amqp091.Connection, error) {
	attempts := max(cfg.RetryAttempts, 1)

	var lastErr error
	for i := 1; i <= attempts; i++ {
		conn, err := amqp091.Dial(cfg.URL)
		if err == nil {
			return conn, nil
		}
		lastErr = err

		sleep := min(cfg.RetryDelay*time.Duration(math.Pow(2, float64(i-1))), maxDialDelay)
		logrus.WithError(err).WithFields(logrus.Fields{
			"attempt": i,
			"sleep":   sleep.String(),
		}).Warn("Event broker dial failed")

		if i == attempts {
			break
		}

		timer := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, errors.Wrap(ctx.Err(), "dial cancelled")
		case <-timer.C:
		}
	}

	return nil, errors.Wrapf(lastErr, "error dialing event broker after %d attempts", attempts)
}

func (p *rabbitPublisher) Publish(ctx context.Context, key string, msg Envelope) error {
	if msg.Meta.Producer == "" {
		msg.Meta.Producer = p.producer
	}
	if msg.Meta.ID == "" {
		msg.Meta.ID = uuid.NewString()
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "error encoding event")
	}

	correlationID := ""
	if msg.Meta.CorrelationID != nil {
		correlationID = *msg.Meta.CorrelationID
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil || p.channel.IsClosed() {
		ch, err := p.conn.Channel()
		if err != nil {
			return errors.Wrap(err, "error reopening channel")
		}
		p.channel = ch
	}

	err = p.channel.PublishWithContext(ctx, p.exchange, key, false, false, amqp091.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp091.Persistent,
		MessageId:     msg.Meta.ID,
		CorrelationId: correlationID,
		Type:          msg.Meta.Type,
		AppId:         p.producer,
		Timestamp:     msg.Meta.Time,
		Body:          body,
	})
	if err != nil {
		return errors.Wrapf(err, "error publishing %s", key)
	}

	logrus.WithFields(logrus.Fields{
		"key":      key,
		"exchange": p.exchange,
	}).Debug("Event published")

	return nil
}

func (p *rabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		_ = p.channel.Close()
	}
	return p.conn.Close()
}
