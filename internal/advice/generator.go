package advice

import (
	"context"

	"go.uber.org/zap"

	"github.com/kunstwinkel/zoeker/internal/metrics"
)

// Generator composes a primary provider with the deterministic fallback.
// A primary failure is recovered locally and never surfaces to the
// caller; the feature degrades instead of failing the request.
type Generator struct {
	primary  Provider
	fallback *Fallback
	logger   *zap.Logger
}

// NewGenerator creates a generator. primary may be nil, in which case
// every message comes from the fallback templates.
func NewGenerator(primary Provider, logger *zap.Logger) *Generator {
	return &Generator{
		primary:  primary,
		fallback: NewFallback(),
		logger:   logger,
	}
}

// Generate always returns a non-empty message.
func (g *Generator) Generate(ctx context.Context, req Request) string {
	if g.primary != nil {
		msg, err := g.primary.Generate(ctx, req)
		if err == nil && msg != "" {
			return msg
		}
		if err != nil {
			g.logger.Warn("advice generation failed, using fallback",
				zap.String("mode", string(req.Mode)),
				zap.Error(err),
			)
		}
	}

	metrics.AdviceFallbackTotal.Inc()
	msg, _ := g.fallback.Generate(ctx, req)
	return msg
}
