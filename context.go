package privacykit

import "context"

// ContextKey is a key for context values.
// It should be created as a package-level variable.
type ContextKey struct{ name string }

// NewContextKey creates a new context key.
func NewContextKey(name string) *ContextKey {
	return &ContextKey{name}
}

func (k *ContextKey) String() string {
	return "privacykit context key " + k.name
}

// ContextValue retrieves a typed value from the context.
// Returns the zero value of T if the key is not present or has a different type.
func ContextValue[T any](ctx context.Context, key any) T {
	val, _ := ctx.Value(key).(T)
	return val
}

var (
	requestIDKey = NewContextKey("request_id")
	auditIDKey   = NewContextKey("audit_id")
)

// WithRequestID attaches the caller's request id. Gateway log records made
// with this context carry it under "request_id".
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request id set by WithRequestID.
func RequestIDFromContext(ctx context.Context) string {
	return ContextValue[string](ctx, requestIDKey)
}

// WithAuditID pins the audit id used for the next validation instead of a
// freshly generated one, e.g. to correlate with an upstream audit trail.
func WithAuditID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, auditIDKey, id)
}

// AuditIDFromContext returns the audit id set by WithAuditID.
func AuditIDFromContext(ctx context.Context) string {
	return ContextValue[string](ctx, auditIDKey)
}
