// Package audit emits structured audit events for security-relevant
// operations: logins, token rejections, and submission mutations.
package audit

import (
	"context"
	"time"

	"layanan.org/internal/auth"
	"layanan.org/internal/obs"
)

type requestIDKey struct{}

// WithRequestID attaches a request id to the context so subsequent audit
// events can be correlated with the access log.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request id attached by WithRequestID, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// LogEvent writes a single audit record as a JSON line. Fields from the
// caller are merged with the event name, timestamp, request id, and the
// authenticated identity when present.
func LogEvent(ctx context.Context, event string, fields map[string]any) {
	entry := map[string]any{
		"ts":    time.Now().UTC().Format(time.RFC3339Nano),
		"level": "info",
		"msg":   "audit",
		"event": event,
	}
	if id := RequestID(ctx); id != "" {
		entry["request_id"] = id
	}
	if identity, ok := auth.IdentityFromContext(ctx); ok {
		entry["actor"] = identity.Username
	}
	for k, v := range fields {
		entry[k] = v
	}
	obs.LogRequest(entry)
}
