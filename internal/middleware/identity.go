package middleware

import (
	"context"
	"net/http"
)

// Injected key type to avoid context collisions
type contextKey string

const CustomerContextKey = contextKey("customer")

// IdentityMiddleware attaches a fixed customer id to every request. The demo has
// no login; the id comes from configuration.
func IdentityMiddleware(customerID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), CustomerContextKey, customerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CustomerFromContext returns the customer id set by IdentityMiddleware.
func CustomerFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CustomerContextKey).(string)
	return id, ok && id != ""
}
