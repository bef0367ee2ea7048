package contextutil

import (
	"context"

	"github.com/google/uuid"
)

// EnsureRequestID returns ctx with a request ID attached, generating a fresh
// one when none is present yet. Every user-initiated action in the client
// runs under one request ID so its pipeline steps correlate in the logs.
func EnsureRequestID(ctx context.Context) (context.Context, string) {
	if rid := GetRequestID(ctx); rid != "" {
		return ctx, rid
	}
	rid := uuid.New().String()
	return WithRequestID(ctx, rid), rid
}
