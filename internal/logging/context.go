// Package logging carries request-scoped identity and tracing values through
// context.Context so that handlers, services and the logger agree on them.
package logging

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	// TraceIDKey holds the per-request trace identifier.
	TraceIDKey contextKey = "trace_id"
	// AccountIDKey holds the authenticated account identifier.
	AccountIDKey contextKey = "account_id"
)

// WithTraceID returns a context carrying the given trace id.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	if traceID == "" {
		return ctx
	}
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID extracts the trace id from the context, or "".
func GetTraceID(ctx context.Context) string {
	if v, ok := ctx.Value(TraceIDKey).(string); ok {
		return v
	}
	return ""
}

// WithAccountID returns a context carrying the acting account id.
func WithAccountID(ctx context.Context, accountID string) context.Context {
	return context.WithValue(ctx, AccountIDKey, accountID)
}

// GetAccountID extracts the acting account id from the context, or "".
func GetAccountID(ctx context.Context) string {
	if v, ok := ctx.Value(AccountIDKey).(string); ok {
		return v
	}
	return ""
}

// NewTraceID generates a fresh trace identifier.
func NewTraceID() string {
	return uuid.NewString()
}
