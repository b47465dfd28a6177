package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultMyMemoryBaseURL = "https://api.mymemory.translated.net"

// MyMemoryProvider translates via the MyMemory API. It is the best-effort
// secondary provider in the default chain.
type MyMemoryProvider struct {
	baseURL    string
	httpClient *http.Client
}

var _ Provider = (*MyMemoryProvider)(nil)

// MyMemoryConfig holds configuration for the MyMemory provider.
type MyMemoryConfig struct {
	BaseURL string        // Default: https://api.mymemory.translated.net
	Timeout time.Duration // Default: 15s
}

// NewMyMemoryProvider creates a MyMemory provider.
func NewMyMemoryProvider(config MyMemoryConfig) *MyMemoryProvider {
	if config.BaseURL == "" {
		config.BaseURL = defaultMyMemoryBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = 15 * time.Second
	}

	return &MyMemoryProvider{
		baseURL: config.BaseURL,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// Name implements Provider.Name.
func (p *MyMemoryProvider) Name() string { return "mymemory" }

type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
	ResponseStatus  json.Number `json:"responseStatus"`
	ResponseDetails string      `json:"responseDetails"`
}

// Translate implements Provider.Translate.
func (p *MyMemoryProvider) Translate(ctx context.Context, text, source, target string) (string, error) {
	// MyMemory spells auto-detection differently from the rest of the chain.
	if source == "" || source == SourceAuto {
		source = "Autodetect"
	}

	params := url.Values{}
	params.Set("q", text)
	params.Set("langpair", source+"|"+target)

	endpoint := p.baseURL + "/get?" + params.Encode()

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
		return "", fmt.Errorf("mymemory returned status %d: %s", resp.StatusCode, string(body))
	}

	var payload myMemoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	// The API reports its own status inside a 200 body.
	if status, err := payload.ResponseStatus.Int64(); err == nil && status != 200 {
		return "", fmt.Errorf("mymemory error %d: %s", status, payload.ResponseDetails)
	}

	if payload.ResponseData.TranslatedText == "" {
		return "", fmt.Errorf("translation returned empty result")
	}

	return payload.ResponseData.TranslatedText, nil
}
