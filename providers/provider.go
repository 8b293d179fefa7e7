package providers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"feed-beep/models"
)

// Provider is the interface every feed source (NewsData, GNews, ...) must implement.
type Provider interface {
	// Fetch pulls articles matching the topics in the given language and
	// returns them as raw feed items.
	Fetch(ctx context.Context, topics []string, language string) ([]models.RawItem, error)

	// Name returns the provider's unique name (e.g. "newsdata").
	Name() string
}

// Chain tries providers in order and stops at the first one that succeeds.
// A provider that errors is logged and skipped; the chain only fails when
// every provider has failed.
type Chain struct {
	providers []Provider
	logger    *zap.Logger
}

// NewChain builds an ordered provider chain.
func NewChain(logger *zap.Logger, providers ...Provider) *Chain {
	return &Chain{providers: providers, logger: logger}
}

// Fetch runs the chain. An empty result from a provider still counts as
// success; "nothing published today" is not a reason to hit the fallback.
func (c *Chain) Fetch(ctx context.Context, topics []string, language string) ([]models.RawItem, error) {
	if len(c.providers) == 0 {
		return nil, fmt.Errorf("no feed providers configured")
	}

	var lastErr error
	for _, p := range c.providers {
		items, err := p.Fetch(ctx, topics, language)
		if err != nil {
			c.logger.Warn("Provider fetch failed, trying next",
				zap.String("provider", p.Name()), zap.Error(err))
			lastErr = err
			continue
		}
		c.logger.Info("Provider fetch succeeded",
			zap.String("provider", p.Name()), zap.Int("items", len(items)))
		return items, nil
	}
	return nil, fmt.Errorf("all feed providers failed: %w", lastErr)
}

// Name returns the chain's name.
func (c *Chain) Name() string { return "chain" }
