package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// BillingService creates subscription checkout and billing portal sessions.
type BillingService interface {
	Subscribe(ctx context.Context, customerID string) (*CheckoutSession, error)
	Portal(ctx context.Context, customerID, returnURL string) (*CheckoutSession, error)
}

type billingService struct {
	productID string
	client    AutumnClient
	logger    zerolog.Logger
}

// NewBillingService returns a service selling productID as a subscription.
func NewBillingService(productID string, client AutumnClient, logger zerolog.Logger) BillingService {
	return &billingService{
		productID: productID,
		client:    client,
		logger:    logger.With().Str("service", "BillingService").Logger(),
	}
}

func (s *billingService) Subscribe(ctx context.Context, customerID string) (*CheckoutSession, error) {
	sess, err := s.client.Checkout(ctx, CheckoutParams{
		CustomerID: customerID,
		ProductID:  s.productID,
		Mode:       CheckoutModeSubscription,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("customer_id", customerID).Str("product_id", s.productID).Msg("Failed to create checkout session")
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return sess, nil
}

func (s *billingService) Portal(ctx context.Context, customerID, returnURL string) (*CheckoutSession, error) {
	sess, err := s.client.BillingPortal(ctx, customerID, returnURL)
	if err != nil {
		s.logger.Error().Err(err).Str("customer_id", customerID).Msg("Failed to create billing portal session")
		return nil, fmt.Errorf("create billing portal session: %w", err)
	}
	return sess, nil
}
