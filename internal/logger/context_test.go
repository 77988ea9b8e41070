package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestContextRoundTrip(t *testing.T) {
	l := zap.NewNop()
	ctx := ContextWithLogger(context.Background(), l)

	if got := FromContext(ctx); got != l {
		t.Error("FromContext did not return the stored logger")
	}
	if got := FromContextOr(ctx, zap.NewExample()); got != l {
		t.Error("FromContextOr did not prefer the stored logger")
	}
}

func TestFromContext_Empty(t *testing.T) {
	if got := FromContext(context.Background()); got == nil {
		t.Error("FromContext returned nil for empty context")
	}

	def := zap.NewNop()
	if got := FromContextOr(context.Background(), def); got != def {
		t.Error("FromContextOr did not fall back to the default logger")
	}
}
