// Package service holds outbound integrations used by the HTTP handlers.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/iliyamo/studio-booking/internal/config"
	"github.com/iliyamo/studio-booking/internal/queue"
)

// LeadPublisher publishes LeadCapturedEvent messages to a durable queue.
// Each call dials the broker; lead volume is a handful per hour.
type LeadPublisher struct {
	cfg config.QueueConfig
	log *zap.Logger
}

func NewLeadPublisher(cfg config.QueueConfig, log *zap.Logger) *LeadPublisher {
	return &LeadPublisher{cfg: cfg, log: log.Named("lead-publisher")}
}

// PublishLead sends ev as a persistent JSON message.  Errors are logged and
// returned; callers treat them as non-fatal.
func (p *LeadPublisher) PublishLead(ctx context.Context, ev queue.LeadCapturedEvent) error {
	if !p.cfg.Enabled {
		return nil
	}
	if err := p.publish(ctx, ev); err != nil {
		p.log.Warn("publish lead failed", zap.String("ref", ev.Ref), zap.Error(err))
		return err
	}
	return nil
}

func (p *LeadPublisher) publish(ctx context.Context, ev queue.LeadCapturedEvent) error {
	conn, err := amqp.Dial(p.cfg.URL)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.cfg.LeadQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return ch.PublishWithContext(ctx, "", p.cfg.LeadQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		MessageId:    ev.Ref,
		Body:         body,
	})
}
