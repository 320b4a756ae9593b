package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"jokemeter/internal/metrics"
	"jokemeter/internal/model"

	"github.com/rs/zerolog"
)

// TopupService sells one-time credit packs.
type TopupService interface {
	Options() []model.PackOption
	Checkout(ctx context.Context, customerID, packKey, origin string) (*CheckoutSession, error)
}

type topupService struct {
	packs  PackRegistry
	client AutumnClient
	logger zerolog.Logger
}

func NewTopupService(packs PackRegistry, client AutumnClient, logger zerolog.Logger) TopupService {
	return &topupService{
		packs:  packs,
		client: client,
		logger: logger.With().Str("service", "TopupService").Logger(),
	}
}

func (s *topupService) Options() []model.PackOption {
	return s.packs.List()
}

// Checkout opens a one-time payment session for the pack. The price id is
// tried first; the product id is the fallback when the price attempt produces
// no session URL. The error of the last attempt is returned.
func (s *topupService) Checkout(ctx context.Context, customerID, packKey, origin string) (*CheckoutSession, error) {
	pack, ok := s.packs.Get(packKey)
	if !ok {
		metrics.TopupCheckoutsTotal.WithLabelValues("unknown_pack").Inc()
		return nil, fmt.Errorf("%w: %q", ErrUnknownPack, packKey)
	}

	origin = strings.TrimRight(origin, "/")
	base := CheckoutParams{
		CustomerID: customerID,
		Mode:       CheckoutModePayment,
		SuccessURL: origin + "/?topup=success&pack=" + url.QueryEscape(pack.Key),
		CancelURL:  origin + "/?topup=cancel",
	}

	var lastErr error
	if pack.PriceID != "" {
		params := base
		params.PriceID = pack.PriceID
		sess, err := s.client.Checkout(ctx, params)
		if err == nil {
			metrics.TopupCheckoutsTotal.WithLabelValues("ok").Inc()
			return sess, nil
		}
		s.logger.Warn().Err(err).Str("pack", pack.Key).Msg("Price checkout gave no session")
		lastErr = err
	}
	if pack.ProductID != "" {
		params := base
		params.ProductID = pack.ProductID
		sess, err := s.client.Checkout(ctx, params)
		if err == nil {
			metrics.TopupCheckoutsTotal.WithLabelValues("ok").Inc()
			return sess, nil
		}
		s.logger.Warn().Err(err).Str("pack", pack.Key).Msg("Product checkout gave no session")
		lastErr = err
	}

	if errors.Is(lastErr, ErrNoCheckoutURL) {
		metrics.TopupCheckoutsTotal.WithLabelValues("no_checkout_url").Inc()
	} else {
		metrics.TopupCheckoutsTotal.WithLabelValues("failed").Inc()
	}
	return nil, lastErr
}
