package translate

import (
	"context"
	"errors"
)

// SourceAuto asks the provider to detect the source language itself.
const SourceAuto = "auto"

// ErrExhausted is returned by a Chain when every provider failed.
var ErrExhausted = errors.New("all translation providers failed")

// Provider translates a blob of text between two language codes.
// Implementations are stateless HTTP clients around external backends.
type Provider interface {
	// Name identifies the provider in logs.
	Name() string

	// Translate returns text translated from source to target. Source may
	// be SourceAuto if the provider supports detection.
	Translate(ctx context.Context, text, source, target string) (string, error)
}
