package privacy

import (
	"regexp"
)

// Therapy messages carry more PII than most chat traffic: people name
// contacts, share phone numbers for callbacks, paste insurance details.
// Nothing of that belongs in logs or in requests to third-party APIs.

var (
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)

	// US, international, and 7-digit local numbers
	phoneRegex = regexp.MustCompile(`(\+\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]\d{4}|\b\d{3}[-.\s]\d{4}\b`)

	ssnRegex = regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)

	creditCardRegex = regexp.MustCompile(`\b\d{4}[-\s]\d{4}[-\s]\d{4}[-\s]\d{4}\b`)
)

// Redact replaces PII in text with typed placeholders.
func Redact(text string) string {
	text = emailRegex.ReplaceAllString(text, "[EMAIL]")
	text = phoneRegex.ReplaceAllString(text, "[PHONE]")
	text = ssnRegex.ReplaceAllString(text, "[SSN]")
	text = creditCardRegex.ReplaceAllString(text, "[CARD]")
	return text
}

// SanitizeForLogging prepares text for safe logging: redacted and truncated.
func SanitizeForLogging(text string) string {
	redacted := Redact(text)
	if len(redacted) > 200 {
		return redacted[:197] + "..."
	}
	return redacted
}

// ContainsPII checks if text contains potential PII.
func ContainsPII(text string) bool {
	return emailRegex.MatchString(text) ||
		phoneRegex.MatchString(text) ||
		ssnRegex.MatchString(text) ||
		creditCardRegex.MatchString(text)
}
