package translate

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Chain tries an ordered list of providers until one succeeds. Each provider
// gets a fixed number of attempts with a fixed delay between them before the
// chain moves on to the next. No exponential backoff, no circuit breaking.
type Chain struct {
	providers []Provider
	attempts  int
	delay     time.Duration
	logger    *zap.Logger
}

// NewChain creates a provider chain. Attempts defaults to 3 and delay to 1s
// when zero values are given.
func NewChain(logger *zap.Logger, providers ...Provider) *Chain {
	return &Chain{
		providers: providers,
		attempts:  3,
		delay:     time.Second,
		logger:    logger,
	}
}

// WithRetry overrides the per-provider attempt count and fixed delay.
func (c *Chain) WithRetry(attempts int, delay time.Duration) *Chain {
	if attempts > 0 {
		c.attempts = attempts
	}
	c.delay = delay
	return c
}

// Translate implements Provider.Translate over the whole chain. It returns
// ErrExhausted (wrapped with the last provider failure) once every provider
// has used up its attempts.
func (c *Chain) Translate(ctx context.Context, text, source, target string) (string, error) {
	if len(c.providers) == 0 {
		return "", ErrExhausted
	}

	var lastErr error
	for _, provider := range c.providers {
		for attempt := 1; attempt <= c.attempts; attempt++ {
			translated, err := provider.Translate(ctx, text, source, target)
			if err == nil {
				return translated, nil
			}
			lastErr = err
			c.logger.Warn("translation attempt failed",
				zap.String("provider", provider.Name()),
				zap.Int("attempt", attempt),
				zap.Error(err))

			if attempt == c.attempts {
				break
			}
			select {
			case <-time.After(c.delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
		c.logger.Error("translation provider exhausted",
			zap.String("provider", provider.Name()),
			zap.Int("attempts", c.attempts))
	}

	return "", fmt.Errorf("%w: %v", ErrExhausted, lastErr)
}
