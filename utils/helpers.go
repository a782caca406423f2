package utils

import (
	"context"
	"crypto/rand"
	"encoding/hex"
)

// GenerateTraceID generates a random hex trace id for request logging.
func GenerateTraceID() string {
	b := make([]byte, traceIDLen/2) //nolint:gomnd
	if _, err := rand.Read(b); err != nil {
		return "0000000000000000"
	}
	return hex.EncodeToString(b)
}

// WithTraceID returns a copy of ctx carrying traceID.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, CtxTraceID, traceID)
}
