package translate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// stubProvider is a scriptable Provider for chain tests.
type stubProvider struct {
	name    string
	results []result
	calls   int
}

type result struct {
	text string
	err  error
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Translate(_ context.Context, _, _, _ string) (string, error) {
	r := s.results[s.calls%len(s.results)]
	s.calls++
	return r.text, r.err
}

func TestChain_PrimarySucceeds(t *testing.T) {
	primary := &stubProvider{name: "primary", results: []result{{text: "hola"}}}
	secondary := &stubProvider{name: "secondary", results: []result{{err: errors.New("unused")}}}

	chain := NewChain(zap.NewNop(), primary, secondary).WithRetry(3, 0)

	out, err := chain.Translate(context.Background(), "hello", SourceAuto, "es")
	assert.NoError(t, err)
	assert.Equal(t, "hola", out)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, secondary.calls)
}

func TestChain_RetriesThenFallsBack(t *testing.T) {
	boom := errors.New("boom")
	primary := &stubProvider{name: "primary", results: []result{{err: boom}}}
	secondary := &stubProvider{name: "secondary", results: []result{{text: "hola"}}}

	chain := NewChain(zap.NewNop(), primary, secondary).WithRetry(3, 0)

	out, err := chain.Translate(context.Background(), "hello", SourceAuto, "es")
	assert.NoError(t, err)
	assert.Equal(t, "hola", out)
	assert.Equal(t, 3, primary.calls, "primary should be retried to exhaustion")
	assert.Equal(t, 1, secondary.calls)
}

func TestChain_AllProvidersExhausted(t *testing.T) {
	boom := errors.New("boom")
	primary := &stubProvider{name: "primary", results: []result{{err: boom}}}
	secondary := &stubProvider{name: "secondary", results: []result{{err: boom}}}

	chain := NewChain(zap.NewNop(), primary, secondary).WithRetry(2, 0)

	_, err := chain.Translate(context.Background(), "hello", SourceAuto, "es")
	assert.ErrorIs(t, err, ErrExhausted)
	assert.Equal(t, 2, primary.calls)
	assert.Equal(t, 2, secondary.calls)
}

func TestChain_EmptyChain(t *testing.T) {
	chain := NewChain(zap.NewNop())

	_, err := chain.Translate(context.Background(), "hello", SourceAuto, "es")
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestChain_ContextCancelledDuringDelay(t *testing.T) {
	boom := errors.New("boom")
	primary := &stubProvider{name: "primary", results: []result{{err: boom}}}

	chain := NewChain(zap.NewNop(), primary).WithRetry(3, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := chain.Translate(ctx, "hello", SourceAuto, "es")
	assert.ErrorIs(t, err, context.Canceled)
}
