package service

import (
	"context"
	"errors"
)

type trackCall struct {
	CustomerID string
	FeatureID  string
	Amount     int
	Metadata   map[string]string
}

// fakeAutumn is an in-memory AutumnClient. Unset funcs fail the call.
type fakeAutumn struct {
	checkFn    func(customerID, featureID string) (*CheckResult, error)
	checkoutFn func(p CheckoutParams) (*CheckoutSession, error)
	portalFn   func(customerID, returnURL string) (*CheckoutSession, error)
	trackErr   error

	balance     *float64
	balanceErr  error
	customer    map[string]any
	customerErr error

	trackCalls    []trackCall
	checkoutCalls []CheckoutParams
}

var errNotStubbed = errors.New("not stubbed")

func (f *fakeAutumn) Check(_ context.Context, customerID, featureID string) (*CheckResult, error) {
	if f.checkFn == nil {
		return nil, errNotStubbed
	}
	return f.checkFn(customerID, featureID)
}

func (f *fakeAutumn) Track(_ context.Context, customerID, featureID string, amount int, metadata map[string]string) error {
	f.trackCalls = append(f.trackCalls, trackCall{customerID, featureID, amount, metadata})
	return f.trackErr
}

func (f *fakeAutumn) Checkout(_ context.Context, p CheckoutParams) (*CheckoutSession, error) {
	f.checkoutCalls = append(f.checkoutCalls, p)
	if f.checkoutFn == nil {
		return nil, errNotStubbed
	}
	return f.checkoutFn(p)
}

func (f *fakeAutumn) BillingPortal(_ context.Context, customerID, returnURL string) (*CheckoutSession, error) {
	if f.portalFn == nil {
		return nil, errNotStubbed
	}
	return f.portalFn(customerID, returnURL)
}

func (f *fakeAutumn) Customer(context.Context, string) (map[string]any, error) {
	return f.customer, f.customerErr
}

func (f *fakeAutumn) Balance(context.Context, string, string) (*float64, error) {
	if f.balance == nil && f.balanceErr == nil {
		return nil, ErrBalanceUnsupported
	}
	return f.balance, f.balanceErr
}

func ptr(f float64) *float64 { return &f }
