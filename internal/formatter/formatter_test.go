package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReformat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "mixed markdown and numbered markers",
			input: "**Breathing**\nInhale slowly.\n\n2. Step 2 stuff",
			want:  "1. Breathing\n   Inhale slowly.\n\n2. Step 2 stuff",
		},
		{
			name:  "renumbers out-of-order source numbering",
			input: "5. First thing\n3. Second thing\n9. Third thing",
			want:  "1. First thing\n2. Second thing\n3. Third thing",
		},
		{
			name:  "prose before first marker passes through",
			input: "Here are some ideas that may help.\n**Journaling**\nWrite each morning.",
			want:  "Here are some ideas that may help.\n1. Journaling\n   Write each morning.",
		},
		{
			name:  "plain prose untouched",
			input: "Take a deep breath.\nYou are doing fine.",
			want:  "Take a deep breath.\nYou are doing fine.",
		},
		{
			name:  "trailing description flushed at end of input",
			input: "1. Grounding\nName five things you can see.\nName four you can touch.",
			want:  "1. Grounding\n   Name five things you can see.\n   Name four you can touch.",
		},
		{
			name:  "blank lines preserved as separators",
			input: "**One**\n\n**Two**",
			want:  "1. One\n\n2. Two",
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  **Calm**  \n   slow breaths   ",
			want:  "1. Calm\n   slow breaths",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reformat(tt.input))
		})
	}
}

// Reformatting is not idempotent in general, but applying it to already-clean
// numbered output must keep the title sequence stable.
func TestReformat_StableOnCleanOutput(t *testing.T) {
	input := "**Breathing**\nInhale slowly.\n\n2. Step 2 stuff"

	once := Reformat(input)
	twice := Reformat(once)

	assert.Equal(t, once, twice)
}
