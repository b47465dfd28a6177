package language

import (
	"errors"
	"strings"

	"github.com/pemistahl/lingua-go"
)

// ErrDetectionFailed is returned when the detector cannot produce a
// reliable language for the given text.
var ErrDetectionFailed = errors.New("language detection failed")

// Detector identifies the language of a piece of text, returning a
// lowercase ISO 639-1 code.
type Detector interface {
	Detect(text string) (string, error)
}

// LinguaDetector wraps the lingua statistical detector.
type LinguaDetector struct {
	detector lingua.LanguageDetector
}

var _ Detector = (*LinguaDetector)(nil)

// NewLinguaDetector builds a detector over all languages lingua knows.
func NewLinguaDetector() *LinguaDetector {
	return &LinguaDetector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			Build(),
	}
}

// Detect implements Detector.Detect.
func (d *LinguaDetector) Detect(text string) (string, error) {
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", ErrDetectionFailed
	}
	return strings.ToLower(lang.IsoCode639_1().String()), nil
}
