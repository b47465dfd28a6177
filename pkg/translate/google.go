package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultGoogleBaseURL = "https://translate.googleapis.com"

// GoogleProvider translates via the public Google Translate web endpoint.
// This is the primary provider in the default chain.
type GoogleProvider struct {
	baseURL    string
	httpClient *http.Client
}

var _ Provider = (*GoogleProvider)(nil)

// GoogleConfig holds configuration for the Google provider.
type GoogleConfig struct {
	BaseURL string        // Default: https://translate.googleapis.com
	Timeout time.Duration // Default: 15s
}

// NewGoogleProvider creates a Google Translate provider.
func NewGoogleProvider(config GoogleConfig) *GoogleProvider {
	if config.BaseURL == "" {
		config.BaseURL = defaultGoogleBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = 15 * time.Second
	}

	return &GoogleProvider{
		baseURL: config.BaseURL,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// Name implements Provider.Name.
func (p *GoogleProvider) Name() string { return "google" }

// Translate implements Provider.Translate.
func (p *GoogleProvider) Translate(ctx context.Context, text, source, target string) (string, error) {
	if source == "" {
		source = SourceAuto
	}

	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", source)
	params.Set("tl", target)
	params.Set("dt", "t")
	params.Set("q", text)

	endpoint := p.baseURL + "/translate_a/single?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("google translate returned status %d: %s", resp.StatusCode, string(body))
	}

	// Response shape is nested arrays: [[[translated, original, ...], ...], ...]
	var payload []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("empty translation response")
	}

	var segments [][]json.RawMessage
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", fmt.Errorf("failed to decode segments: %w", err)
	}

	var sb strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		var part string
		if err := json.Unmarshal(seg[0], &part); err != nil {
			continue
		}
		sb.WriteString(part)
	}

	translated := sb.String()
	if translated == "" {
		return "", fmt.Errorf("translation returned empty result")
	}

	return translated, nil
}
