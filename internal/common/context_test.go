package common

import (
	"context"
	"testing"
)

func TestRequestAndUserIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Fatalf("empty context request id = %q", got)
	}

	ctx = WithRequestID(ctx, "trace-1")
	ctx = WithUserID(ctx, "user-1")
	if got := RequestIDFromContext(ctx); got != "trace-1" {
		t.Errorf("request id = %q", got)
	}
	if got := UserIDFromContext(ctx); got != "user-1" {
		t.Errorf("user id = %q", got)
	}
}
