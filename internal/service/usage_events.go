package service

import (
	"context"
	"encoding/json"
	"fmt"

	"jokemeter/internal/model"
	"jokemeter/internal/pubsub"
)

// UsagePublisher mirrors accepted consumption to an event stream.
type UsagePublisher interface {
	PublishUsage(ctx context.Context, ev model.UsageEvent) error
}

type noopUsagePublisher struct{}

func (noopUsagePublisher) PublishUsage(context.Context, model.UsageEvent) error { return nil }

type usagePublisher struct {
	pub   pubsub.Publisher
	topic string
}

// NewUsagePublisher returns a publisher for topic, or a no-op when either the
// publisher or the topic is missing.
func NewUsagePublisher(pub pubsub.Publisher, topic string) UsagePublisher {
	if pub == nil || topic == "" {
		return noopUsagePublisher{}
	}
	return &usagePublisher{pub: pub, topic: topic}
}

func (p *usagePublisher) PublishUsage(ctx context.Context, ev model.UsageEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshaling usage event: %w", err)
	}
	if _, err := p.pub.Publish(ctx, p.topic, payload); err != nil {
		return err
	}
	return nil
}
