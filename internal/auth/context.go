package auth

import "context"

// Identity describes the authenticated caller attached to a request.
type Identity struct {
	Username string
}

type contextKey struct{}

// ContextWithIdentity stores the authenticated identity on the context.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// IdentityFromContext returns the identity stored by the auth middleware.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}
