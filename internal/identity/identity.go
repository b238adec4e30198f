// Package identity carries the authenticated user id through a request's
// context.Context. One value per inbound request, set by the auth middleware
// and gone when the request context is released, so concurrent requests can
// never observe each other's identity.
package identity

import "context"

type ctxKey struct{}

// WithUserID returns a child context carrying the current user id.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserID returns the current user id, or false if the context carries none.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ctxKey{}).(int64)
	return id, ok
}
