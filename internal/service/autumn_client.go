package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"jokemeter/internal/metrics"

	"github.com/rs/zerolog"
)

// Checkout modes understood by the provider.
const (
	CheckoutModeSubscription = "subscription"
	CheckoutModePayment      = "payment"
)

// CheckResult is the provider's answer to an entitlement check.
type CheckResult struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// CheckoutParams describes a hosted checkout request. Exactly one of ProductID
// and PriceID is normally set.
type CheckoutParams struct {
	CustomerID string
	ProductID  string
	PriceID    string
	Mode       string
	SuccessURL string
	CancelURL  string
}

// CheckoutSession is a redirect target returned by the provider. Raw keeps the
// full payload for callers that echo it back.
type CheckoutSession struct {
	URL string
	Raw map[string]any
}

// AutumnClient talks to the billing provider. Nothing here retries.
type AutumnClient interface {
	Check(ctx context.Context, customerID, featureID string) (*CheckResult, error)
	Track(ctx context.Context, customerID, featureID string, amount int, metadata map[string]string) error
	Checkout(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
	BillingPortal(ctx context.Context, customerID, returnURL string) (*CheckoutSession, error)
	Customer(ctx context.Context, customerID string) (map[string]any, error)
	Balance(ctx context.Context, customerID, featureID string) (*float64, error)
}

type autumnClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  zerolog.Logger
}

// NewAutumnClient returns a client for the provider at baseURL. A zero timeout
// leaves provider calls bounded only by the request context.
func NewAutumnClient(baseURL, apiKey string, timeout time.Duration, logger zerolog.Logger) AutumnClient {
	return &autumnClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.With().Str("service", "AutumnClient").Logger(),
	}
}

type checkRequest struct {
	CustomerID string `json:"customer_id"`
	FeatureID  string `json:"feature_id"`
}

type trackRequest struct {
	CustomerID string            `json:"customer_id"`
	FeatureID  string            `json:"feature_id"`
	Amount     int               `json:"amount"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

type checkoutRequest struct {
	CustomerID string `json:"customer_id"`
	ProductID  string `json:"product_id,omitempty"`
	PriceID    string `json:"price_id,omitempty"`
	Mode       string `json:"mode,omitempty"`
	SuccessURL string `json:"success_url,omitempty"`
	CancelURL  string `json:"cancel_url,omitempty"`
}

type portalRequest struct {
	ReturnURL string `json:"return_url,omitempty"`
}

func (c *autumnClient) Check(ctx context.Context, customerID, featureID string) (*CheckResult, error) {
	var res CheckResult
	if err := c.do(ctx, "check", http.MethodPost, "/check", checkRequest{CustomerID: customerID, FeatureID: featureID}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *autumnClient) Track(ctx context.Context, customerID, featureID string, amount int, metadata map[string]string) error {
	if amount == 0 {
		amount = 1
	}
	req := trackRequest{CustomerID: customerID, FeatureID: featureID, Amount: amount, Metadata: metadata}
	return c.do(ctx, "track", http.MethodPost, "/track", req, nil)
}

func (c *autumnClient) Checkout(ctx context.Context, params CheckoutParams) (*CheckoutSession, error) {
	req := checkoutRequest{
		CustomerID: params.CustomerID,
		ProductID:  params.ProductID,
		PriceID:    params.PriceID,
		Mode:       params.Mode,
		SuccessURL: params.SuccessURL,
		CancelURL:  params.CancelURL,
	}
	raw := map[string]any{}
	if err := c.do(ctx, "checkout", http.MethodPost, "/checkout", req, &raw); err != nil {
		return nil, err
	}
	return sessionFrom("checkout", raw)
}

func (c *autumnClient) BillingPortal(ctx context.Context, customerID, returnURL string) (*CheckoutSession, error) {
	path := "/customers/" + url.PathEscape(customerID) + "/billing_portal"
	raw := map[string]any{}
	if err := c.do(ctx, "billing_portal", http.MethodPost, path, portalRequest{ReturnURL: returnURL}, &raw); err != nil {
		return nil, err
	}
	return sessionFrom("billing_portal", raw)
}

func (c *autumnClient) Customer(ctx context.Context, customerID string) (map[string]any, error) {
	raw := map[string]any{}
	if err := c.do(ctx, "customer", http.MethodGet, "/customers/"+url.PathEscape(customerID), nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// Balance uses the dedicated balance endpoint. Providers without one answer
// 404, reported as ErrBalanceUnsupported. A nil balance with a nil error means
// the endpoint answered without a usable number.
func (c *autumnClient) Balance(ctx context.Context, customerID, featureID string) (*float64, error) {
	path := "/customers/" + url.PathEscape(customerID) + "/balances/" + url.PathEscape(featureID)
	raw := map[string]any{}
	err := c.do(ctx, "balance", http.MethodGet, path, nil, &raw)
	if err != nil {
		var upErr *UpstreamError
		if errors.As(err, &upErr) && upErr.StatusCode == http.StatusNotFound {
			return nil, ErrBalanceUnsupported
		}
		return nil, err
	}
	if n, ok := remainingOf(raw); ok {
		return &n, nil
	}
	return nil, nil
}

func sessionFrom(op string, raw map[string]any) (*CheckoutSession, error) {
	sess := &CheckoutSession{URL: ResolveRedirectURL(raw), Raw: raw}
	if sess.URL == "" {
		return sess, fmt.Errorf("autumn %s: %w", op, ErrNoCheckoutURL)
	}
	return sess, nil
}

func (c *autumnClient) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling %s request: %w", op, err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating %s request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.ProviderRequestDuration.WithLabelValues(op, "error").Observe(time.Since(start).Seconds())
		c.logger.Error().Err(err).Str("op", op).Msg("Provider request failed")
		return &UpstreamError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	metrics.ProviderRequestDuration.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &UpstreamError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error().
			Str("op", op).
			Int("status_code", resp.StatusCode).
			Str("error_body", string(respBody)).
			Msg("Provider returned error")
		return &UpstreamError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &UpstreamError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}
