package service

import (
	"context"
	"fmt"
	"time"

	"jokemeter/internal/metrics"
	"jokemeter/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultDenialMessage is reported when the provider denies without a reason.
const DefaultDenialMessage = "You're out of credits."

// GatewayOutcome is the result of one metered request. Exactly one of the
// granted fields (Joke, Remaining) or denied fields (Reason, CheckoutURL) is
// meaningful, selected by Granted.
type GatewayOutcome struct {
	Granted     bool
	Joke        string
	Remaining   *float64
	Reason      string
	CheckoutURL string
}

// GatewayConfig fixes what the gateway meters and sells.
type GatewayConfig struct {
	FeatureID         string
	FallbackProductID string
	// Action produces the payload delivered on a grant. Defaults to RandomJoke.
	Action func() string
}

// GatewayService checks, performs and records one unit of a metered feature.
type GatewayService interface {
	Use(ctx context.Context, customerID string) (*GatewayOutcome, error)
}

type gatewayService struct {
	cfg     GatewayConfig
	client  AutumnClient
	credits CreditReader
	usage   UsagePublisher
	logger  zerolog.Logger
}

func NewGatewayService(cfg GatewayConfig, client AutumnClient, credits CreditReader, usage UsagePublisher, logger zerolog.Logger) GatewayService {
	if cfg.Action == nil {
		cfg.Action = RandomJoke
	}
	if usage == nil {
		usage = noopUsagePublisher{}
	}
	return &gatewayService{
		cfg:     cfg,
		client:  client,
		credits: credits,
		usage:   usage,
		logger:  logger.With().Str("service", "GatewayService").Str("feature_id", cfg.FeatureID).Logger(),
	}
}

// Use returns an error only when the entitlement check itself fails. A denial
// is a normal outcome; its checkout URL is best-effort.
func (s *gatewayService) Use(ctx context.Context, customerID string) (*GatewayOutcome, error) {
	check, err := s.client.Check(ctx, customerID, s.cfg.FeatureID)
	if err != nil {
		metrics.GatewayDecisionsTotal.WithLabelValues("check_failed").Inc()
		s.logger.Error().Err(err).Str("customer_id", customerID).Msg("Entitlement check failed")
		return nil, fmt.Errorf("checking entitlement: %w", err)
	}

	if !check.Allowed {
		metrics.GatewayDecisionsTotal.WithLabelValues("denied").Inc()
		return s.deny(ctx, customerID, check.Reason), nil
	}

	metrics.GatewayDecisionsTotal.WithLabelValues("granted").Inc()
	joke := s.cfg.Action()
	s.record(ctx, customerID)

	return &GatewayOutcome{
		Granted:   true,
		Joke:      joke,
		Remaining: s.credits.Remaining(ctx, customerID, s.cfg.FeatureID),
	}, nil
}

func (s *gatewayService) deny(ctx context.Context, customerID, reason string) *GatewayOutcome {
	if reason == "" {
		reason = DefaultDenialMessage
	}
	out := &GatewayOutcome{Reason: reason}

	sess, err := s.client.Checkout(ctx, CheckoutParams{
		CustomerID: customerID,
		ProductID:  s.cfg.FallbackProductID,
		Mode:       CheckoutModeSubscription,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("customer_id", customerID).Msg("Upgrade checkout failed; reporting denial without redirect")
		return out
	}
	out.CheckoutURL = sess.URL
	return out
}

// record tracks one unit after delivery. Failures are logged and swallowed.
func (s *gatewayService) record(ctx context.Context, customerID string) {
	metadata := map[string]string{"source": "joke-demo"}
	if err := s.client.Track(ctx, customerID, s.cfg.FeatureID, 1, metadata); err != nil {
		metrics.TrackFailuresTotal.Inc()
		s.logger.Error().Err(err).Str("customer_id", customerID).Msg("Failed to track usage")
		return
	}

	ev := model.UsageEvent{
		EventID:    uuid.NewString(),
		CustomerID: customerID,
		FeatureID:  s.cfg.FeatureID,
		Amount:     1,
		Metadata:   metadata,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.usage.PublishUsage(ctx, ev); err != nil {
		s.logger.Warn().Err(err).Str("event_id", ev.EventID).Msg("Failed to publish usage event")
	}
}
