package handler

import (
	"context"
	"net/http"

	"jokemeter/internal/middleware"
	"jokemeter/internal/model"
	"jokemeter/internal/service"
)

type fakeGateway struct {
	outcome *service.GatewayOutcome
	err     error
	calls   []string
}

func (f *fakeGateway) Use(ctx context.Context, customerID string) (*service.GatewayOutcome, error) {
	f.calls = append(f.calls, customerID)
	return f.outcome, f.err
}

type fakeCredits struct {
	value *float64
}

func (f fakeCredits) Remaining(ctx context.Context, customerID, featureID string) *float64 {
	return f.value
}

type fakeTopups struct {
	options []model.PackOption
	sess    *service.CheckoutSession
	err     error

	gotPack   string
	gotOrigin string
}

func (f *fakeTopups) Options() []model.PackOption { return f.options }

func (f *fakeTopups) Checkout(ctx context.Context, customerID, packKey, origin string) (*service.CheckoutSession, error) {
	f.gotPack = packKey
	f.gotOrigin = origin
	return f.sess, f.err
}

type fakeBilling struct {
	sess         *service.CheckoutSession
	err          error
	gotReturnURL string
}

func (f *fakeBilling) Subscribe(ctx context.Context, customerID string) (*service.CheckoutSession, error) {
	return f.sess, f.err
}

func (f *fakeBilling) Portal(ctx context.Context, customerID, returnURL string) (*service.CheckoutSession, error) {
	f.gotReturnURL = returnURL
	return f.sess, f.err
}

func ptr(v float64) *float64 { return &v }

// newMux registers a handler's routes behind a fixed-customer identity.
func newMux(register func(*http.ServeMux, func(http.Handler) http.Handler)) *http.ServeMux {
	mux := http.NewServeMux()
	register(mux, middleware.IdentityMiddleware("cust-1"))
	return mux
}
