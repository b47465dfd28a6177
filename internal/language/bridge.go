package language

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/haventalk/haventalk-be/pkg/translate"
	"go.uber.org/zap"
)

// DefaultLanguage is assumed whenever detection cannot do better.
const DefaultLanguage = "en"

// codeMap remaps detector-reported codes to the codes the translation
// backends expect. Unmapped codes pass through unchanged.
var codeMap = map[string]string{
	"zh":      "zh-CN",
	"zh-Hant": "zh-TW",
}

// englishIndicators force the detected language to English when present.
// Short messages ("i am not well") routinely fool statistical detectors,
// and misrouting an English message through translation is worse than the
// occasional false positive here.
var englishIndicators = []string{"i", "am", "feel", "not", "well", "depressed", "anxious"}

// Translator is the capability the bridge needs from the provider chain.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// Bridge moves user text into English for classification and the upstream
// model, and moves replies back into the user's language.
type Bridge struct {
	detector       Detector
	translator     Translator
	detectAttempts int
	detectDelay    time.Duration
	logger         *zap.Logger
}

// NewBridge creates a language bridge.
func NewBridge(detector Detector, translator Translator, logger *zap.Logger) *Bridge {
	return &Bridge{
		detector:       detector,
		translator:     translator,
		detectAttempts: 3,
		detectDelay:    500 * time.Millisecond,
		logger:         logger,
	}
}

// DetectLanguage returns the backend-compatible language code for the text.
// Detection runs on a cleaned copy (newlines collapsed, trimmed), retries up
// to three times with a short delay, and falls back to English when every
// attempt fails. Detection failure is never fatal.
func (b *Bridge) DetectLanguage(text string) string {
	cleaned := strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
	if cleaned == "" {
		return DefaultLanguage
	}

	detected := DefaultLanguage
	for attempt := 1; attempt <= b.detectAttempts; attempt++ {
		code, err := b.detector.Detect(cleaned)
		if err == nil {
			detected = code
			if containsEnglishIndicator(cleaned) {
				b.logger.Debug("forcing English due to indicator words",
					zap.String("detected", code))
				detected = DefaultLanguage
			}
			break
		}

		b.logger.Warn("language detection attempt failed",
			zap.Int("attempt", attempt),
			zap.Error(err))
		if attempt < b.detectAttempts {
			time.Sleep(b.detectDelay)
		} else {
			b.logger.Error("language detection failed, defaulting to English",
				zap.Int("attempts", b.detectAttempts))
		}
	}

	return mapCode(detected)
}

// ToEnglish detects the language of text and translates it to English when
// needed. Translation failure here is fatal: the classifier and the upstream
// model only understand English, so the caller must not proceed.
func (b *Bridge) ToEnglish(ctx context.Context, text string) (string, string, error) {
	lang := b.DetectLanguage(text)
	if lang == DefaultLanguage {
		return text, lang, nil
	}

	english, err := b.translator.Translate(ctx, text, translate.SourceAuto, DefaultLanguage)
	if err != nil {
		return "", lang, fmt.Errorf("translation to English failed: %w", err)
	}

	b.logger.Info("translated message to English", zap.String("source_lang", lang))
	return english, lang, nil
}

// FromEnglish translates English text back to lang, line by line so long
// replies stay within provider size limits. Blank lines pass through. On
// provider exhaustion it degrades gracefully: the English text is returned
// with an advisory note instead of failing the request.
func (b *Bridge) FromEnglish(ctx context.Context, text, lang string) string {
	if lang == DefaultLanguage {
		return text
	}

	lines := strings.Split(text, "\n")
	translated := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			translated = append(translated, "")
			continue
		}
		out, err := b.translator.Translate(ctx, line, DefaultLanguage, lang)
		if err != nil {
			b.logger.Error("translation from English failed, degrading to English",
				zap.String("target_lang", lang),
				zap.Error(err))
			return text + fmt.Sprintf("\n\n(Note: Translation to %s is not available right now, so the response is in English.)", lang)
		}
		translated = append(translated, out)
	}

	return strings.Join(translated, "\n")
}

func containsEnglishIndicator(text string) bool {
	// Whole-word comparison: indicators like "i" and "am" would otherwise
	// match inside nearly any Latin-script word.
	for _, field := range strings.Fields(strings.ToLower(text)) {
		word := strings.Trim(field, ".,!?;:'\"()")
		for _, indicator := range englishIndicators {
			if word == indicator {
				return true
			}
		}
	}
	return false
}

func mapCode(code string) string {
	if mapped, ok := codeMap[code]; ok {
		return mapped
	}
	return code
}
