package privacykit_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/privacykit"
)

func TestContextValue(t *testing.T) {
	key := privacykit.NewContextKey("tenant")
	ctx := context.WithValue(context.Background(), key, "acme")

	assert.Equal(t, "acme", privacykit.ContextValue[string](ctx, key))
	assert.Zero(t, privacykit.ContextValue[int](ctx, key), "wrong type yields zero value")
	assert.Empty(t, privacykit.ContextValue[string](context.Background(), key))
}

func TestRequestAndAuditIDs(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, privacykit.RequestIDFromContext(ctx))
	assert.Empty(t, privacykit.AuditIDFromContext(ctx))

	ctx = privacykit.WithRequestID(ctx, "req-1")
	ctx = privacykit.WithAuditID(ctx, "audit-1")
	assert.Equal(t, "req-1", privacykit.RequestIDFromContext(ctx))
	assert.Equal(t, "audit-1", privacykit.AuditIDFromContext(ctx))
}
