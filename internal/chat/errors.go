package chat

import (
	"errors"
	"fmt"
)

// Validation and lookup failures, mapped to 400 by the transport layer.
var (
	ErrEmptyMessage         = errors.New("message cannot be empty")
	ErrTitleRequired        = errors.New("session title required")
	ErrConversationNotFound = errors.New("session not found")
)

// UpstreamError wraps a chat-completion API failure. The wrapped error
// carries the upstream status and body for diagnosis.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream API error: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// TranslationError means input-direction translation exhausted every
// provider. The request must be aborted: classifying or forwarding
// untranslated text would silently change meaning.
type TranslationError struct {
	Err error
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("translation failed: %v", e.Err)
}

func (e *TranslationError) Unwrap() error { return e.Err }
