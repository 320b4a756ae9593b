package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"
)

// creditExtractor pulls a remaining balance for featureID out of an untyped
// customer payload. It returns nil when its shape is absent.
type creditExtractor func(payload map[string]any, featureID string) *float64

// creditExtractors are tried in order; the first non-nil result wins.
var creditExtractors = []creditExtractor{
	fromFeatureList,
	fromKeyedMap("balances"),
	fromKeyedMap("credits"),
	fromKeyedMap("quota"),
}

// ExtractRemaining runs the known payload shapes against a customer record.
func ExtractRemaining(payload map[string]any, featureID string) *float64 {
	for _, extract := range creditExtractors {
		if n := extract(payload, featureID); n != nil {
			return n
		}
	}
	return nil
}

// fromFeatureList handles {"features": [{"feature_id": "...", "remaining": n}]}.
func fromFeatureList(payload map[string]any, featureID string) *float64 {
	list, ok := payload["features"].([]any)
	if !ok {
		return nil
	}
	for _, item := range list {
		rec, ok := item.(map[string]any)
		if !ok {
			continue
		}
		id, _ := rec["feature_id"].(string)
		if id == "" {
			id, _ = rec["id"].(string)
		}
		if id != featureID {
			continue
		}
		if n, ok := remainingOf(rec); ok {
			return &n
		}
	}
	return nil
}

// fromKeyedMap handles {key: {featureID: {"remaining": n}}} and {key: {featureID: n}}.
func fromKeyedMap(key string) creditExtractor {
	return func(payload map[string]any, featureID string) *float64 {
		m, ok := payload[key].(map[string]any)
		if !ok {
			return nil
		}
		entry, ok := m[featureID]
		if !ok {
			return nil
		}
		if n, ok := toNumber(entry); ok {
			return &n
		}
		if rec, ok := entry.(map[string]any); ok {
			if n, ok := remainingOf(rec); ok {
				return &n
			}
		}
		return nil
	}
}

func remainingOf(rec map[string]any) (float64, bool) {
	return toNumber(rec["remaining"])
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// CreditReader reports a customer's remaining balance on a best-effort basis.
// A nil result means unknown, which is not the same as zero.
type CreditReader interface {
	Remaining(ctx context.Context, customerID, featureID string) *float64
}

type creditReader struct {
	client AutumnClient
	logger zerolog.Logger
}

func NewCreditReader(client AutumnClient, logger zerolog.Logger) CreditReader {
	return &creditReader{
		client: client,
		logger: logger.With().Str("service", "CreditReader").Logger(),
	}
}

func (r *creditReader) Remaining(ctx context.Context, customerID, featureID string) *float64 {
	n, err := r.client.Balance(ctx, customerID, featureID)
	switch {
	case err == nil && n != nil:
		return n
	case err != nil && !errors.Is(err, ErrBalanceUnsupported):
		r.logger.Warn().Err(err).Str("customer_id", customerID).Msg("Balance lookup failed")
		return nil
	}

	payload, err := r.client.Customer(ctx, customerID)
	if err != nil {
		r.logger.Warn().Err(err).Str("customer_id", customerID).Msg("Customer lookup failed")
		return nil
	}
	return ExtractRemaining(payload, featureID)
}
