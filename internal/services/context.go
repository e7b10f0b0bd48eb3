package services

import "context"

type contextKey string

const (
	eventIDKey   contextKey = "event_id"
	partKey      contextKey = "part"
	sessionIDKey contextKey = "session_id"
	requestIDKey contextKey = "request_id"
)

// WithEventID annotates context with the tracked event identifier.
func WithEventID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, eventIDKey, id)
}

// EventIDFromContext extracts the event identifier if present.
func EventIDFromContext(ctx context.Context) (int64, bool) {
	v := ctx.Value(eventIDKey)
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case int64:
		return val, true
	case int:
		return int64(val), true
	default:
		return 0, false
	}
}

// WithPart annotates context with the event part being searched.
func WithPart(ctx context.Context, part string) context.Context {
	if part == "" {
		return ctx
	}
	return context.WithValue(ctx, partKey, part)
}

// PartFromContext returns the part name if present.
func PartFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(partKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithSessionID annotates context with the workflow session identifier.
func WithSessionID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionIDKey, id)
}

// SessionIDFromContext extracts the session identifier if present.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(sessionIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
