package classifier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifier_IsInDomain(t *testing.T) {
	cls := NewClassifier()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{
			name:  "anxiety mention",
			input: "I feel so anxious today",
			want:  true,
		},
		{
			name:  "therapy question",
			input: "What kind of therapy helps with panic attacks?",
			want:  true,
		},
		{
			name:  "uppercase keyword",
			input: "I think I have DEPRESSION",
			want:  true,
		},
		{
			name:  "keyword inside longer word",
			input: "the knot in my stomach", // "not" matches as a substring
			want:  true,
		},
		{
			name:  "multi-word keyword",
			input: "can you suggest breathing exercises",
			want:  true,
		},
		{
			name:  "weather question",
			input: "What's the weather tomorrow?",
			want:  false,
		},
		{
			name:  "math question",
			input: "compute 2+2 for me",
			want:  false,
		},
		{
			name:  "empty message",
			input: "",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cls.IsInDomain(tt.input))
		})
	}
}

func TestClassifier_VocabularyIsLowercase(t *testing.T) {
	// Substring matching lowercases the message only, so a mixed-case
	// vocabulary entry could never match.
	for _, kw := range therapyKeywords {
		assert.Equal(t, strings.ToLower(kw), kw, "vocabulary entry %q must be lowercase", kw)
	}
}
