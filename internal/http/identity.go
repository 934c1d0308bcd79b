package http

import "context"

// Identity is the authenticated caller resolved by the auth middleware:
// the stable internal id plus the login email.
type Identity struct {
	UserID int64
	Email  string
}

type identityKey struct{}

func withIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the caller identity attached by the auth
// middleware.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
