package shared

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is the key type for values stored in request contexts.
type ContextKey string

// Context keys
const (
	// SubjectContextKey is the context key for the authenticated subject.
	SubjectContextKey ContextKey = "subject"

	// TraceIDKey is the key for the trace ID in the request context.
	TraceIDKey ContextKey = "traceID"
)

// TraceIDHeader carries an inbound trace id and echoes it on responses.
const TraceIDHeader = "X-Request-ID"

const maxTraceIDLength = 64

// SetTraceID adds a trace ID to the context. A usable inbound id is kept;
// otherwise a new one is generated.
func SetTraceID(ctx context.Context, inbound string) context.Context {
	traceID := strings.TrimSpace(inbound)
	if !validTraceID(traceID) {
		traceID = generateTraceID()
	}
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context, or "" if absent.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// WithSubject stores the authenticated subject in the context.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, SubjectContextKey, subject)
}

// GetSubject returns the authenticated subject, if any.
func GetSubject(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(SubjectContextKey).(string)
	return subject, ok && subject != ""
}

// generateTraceID returns a 32-character hex id.
func generateTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// validTraceID accepts short ids made of letters, digits, '-' and '_'.
func validTraceID(id string) bool {
	if id == "" || len(id) > maxTraceIDLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
