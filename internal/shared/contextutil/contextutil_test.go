package contextutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRequestID_RoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "rid-1")
	assert.Equal(t, "rid-1", GetRequestID(ctx))
	assert.Equal(t, "", GetRequestID(context.Background()))
}

func TestEnsureRequestID(t *testing.T) {
	ctx, rid := EnsureRequestID(context.Background())
	assert.NotEmpty(t, rid)

	// An already-tagged context keeps its id.
	ctx2, rid2 := EnsureRequestID(ctx)
	assert.Equal(t, rid, rid2)
	assert.Equal(t, ctx, ctx2)
}

func TestLogger_RoundTrip(t *testing.T) {
	l := zap.NewNop()
	ctx := WithLogger(context.Background(), l)
	assert.Same(t, l, GetLogger(ctx))
}

func TestLogger_FallsBackToGlobal(t *testing.T) {
	assert.Same(t, zap.L(), GetLogger(context.Background()))
}
