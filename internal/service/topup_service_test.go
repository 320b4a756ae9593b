package service

import (
	"context"
	"testing"

	"jokemeter/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTopup(fake *fakeAutumn) TopupService {
	reg := NewPackRegistry([]config.NamedSlot{
		{Key: "small", Slot: config.PackSlot{PriceID: "price_s", ProductID: "prod_s"}},
		{Key: "medium", Slot: config.PackSlot{ProductID: "prod_m"}},
		{Key: "large", Slot: config.PackSlot{PriceID: "price_l"}},
	})
	return NewTopupService(reg, fake, zerolog.Nop())
}

func TestTopupUnknownPack(t *testing.T) {
	fake := &fakeAutumn{}
	_, err := newTestTopup(fake).Checkout(context.Background(), "c1", "xl", "https://app.example")
	require.ErrorIs(t, err, ErrUnknownPack)
	assert.Empty(t, fake.checkoutCalls)
}

func TestTopupPriceFirst(t *testing.T) {
	fake := &fakeAutumn{checkoutFn: func(p CheckoutParams) (*CheckoutSession, error) {
		return &CheckoutSession{URL: "https://pay.example/" + p.PriceID}, nil
	}}

	sess, err := newTestTopup(fake).Checkout(context.Background(), "c1", "small", "https://app.example/")
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/price_s", sess.URL)

	require.Len(t, fake.checkoutCalls, 1)
	assert.Equal(t, CheckoutParams{
		CustomerID: "c1",
		PriceID:    "price_s",
		Mode:       CheckoutModePayment,
		SuccessURL: "https://app.example/?topup=success&pack=small",
		CancelURL:  "https://app.example/?topup=cancel",
	}, fake.checkoutCalls[0])
}

func TestTopupProductOnlySkipsPrice(t *testing.T) {
	fake := &fakeAutumn{checkoutFn: func(p CheckoutParams) (*CheckoutSession, error) {
		return &CheckoutSession{URL: "https://pay.example/" + p.ProductID}, nil
	}}

	sess, err := newTestTopup(fake).Checkout(context.Background(), "c1", "medium", "http://localhost:8080")
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/prod_m", sess.URL)

	require.Len(t, fake.checkoutCalls, 1)
	assert.Empty(t, fake.checkoutCalls[0].PriceID)
	assert.Equal(t, "prod_m", fake.checkoutCalls[0].ProductID)
	assert.Equal(t, CheckoutModePayment, fake.checkoutCalls[0].Mode)
}

func TestTopupFallsBackToProduct(t *testing.T) {
	fake := &fakeAutumn{checkoutFn: func(p CheckoutParams) (*CheckoutSession, error) {
		if p.PriceID != "" {
			return &CheckoutSession{Raw: map[string]any{"id": "x"}}, ErrNoCheckoutURL
		}
		return &CheckoutSession{URL: "https://pay.example/product"}, nil
	}}

	sess, err := newTestTopup(fake).Checkout(context.Background(), "c1", "small", "https://app.example")
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/product", sess.URL)

	require.Len(t, fake.checkoutCalls, 2)
	assert.Equal(t, "price_s", fake.checkoutCalls[0].PriceID)
	assert.Equal(t, "prod_s", fake.checkoutCalls[1].ProductID)
	assert.Empty(t, fake.checkoutCalls[1].PriceID)
}

func TestTopupFallsBackToProductAfterUpstreamError(t *testing.T) {
	fake := &fakeAutumn{checkoutFn: func(p CheckoutParams) (*CheckoutSession, error) {
		if p.PriceID != "" {
			return nil, &UpstreamError{Op: "checkout", StatusCode: 400, Body: "unknown price"}
		}
		return &CheckoutSession{URL: "https://pay.example/product"}, nil
	}}

	sess, err := newTestTopup(fake).Checkout(context.Background(), "c1", "small", "https://app.example")
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/product", sess.URL)
}

func TestTopupPriceOnlyNoURL(t *testing.T) {
	fake := &fakeAutumn{checkoutFn: func(CheckoutParams) (*CheckoutSession, error) {
		return &CheckoutSession{}, ErrNoCheckoutURL
	}}

	_, err := newTestTopup(fake).Checkout(context.Background(), "c1", "large", "https://app.example")
	require.ErrorIs(t, err, ErrNoCheckoutURL)
	assert.Len(t, fake.checkoutCalls, 1)
}

func TestTopupBothAttemptsNoURL(t *testing.T) {
	fake := &fakeAutumn{checkoutFn: func(CheckoutParams) (*CheckoutSession, error) {
		return &CheckoutSession{}, ErrNoCheckoutURL
	}}

	_, err := newTestTopup(fake).Checkout(context.Background(), "c1", "small", "https://app.example")
	require.ErrorIs(t, err, ErrNoCheckoutURL)
	assert.Len(t, fake.checkoutCalls, 2)
}

func TestTopupUpstreamFailure(t *testing.T) {
	fake := &fakeAutumn{checkoutFn: func(CheckoutParams) (*CheckoutSession, error) {
		return nil, &UpstreamError{Op: "checkout", StatusCode: 500}
	}}

	_, err := newTestTopup(fake).Checkout(context.Background(), "c1", "large", "https://app.example")
	require.ErrorIs(t, err, ErrUpstream)
	assert.NotErrorIs(t, err, ErrNoCheckoutURL)
}

func TestTopupOptions(t *testing.T) {
	opts := newTestTopup(&fakeAutumn{}).Options()
	require.Len(t, opts, 3)
	assert.Equal(t, []string{"small", "medium", "large"}, []string{opts[0].Key, opts[1].Key, opts[2].Key})
}
