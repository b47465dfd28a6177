package xai

import (
	"context"
	"sync"

	"github.com/haventalk/haventalk-be/pkg/llm"
)

// MockClient implements the llm.Client interface for testing
type MockClient struct {
	mu sync.Mutex

	// ChatFunc allows customizing the completion behavior
	ChatFunc func(context.Context, llm.ChatRequest) (*llm.ChatResponse, error)

	// Tracking for assertions
	ChatCalls []llm.ChatRequest
}

var _ llm.Client = (*MockClient)(nil)

// NewMockClient creates a new mock client with default behavior
func NewMockClient() *MockClient {
	return &MockClient{
		ChatCalls: make([]llm.ChatRequest, 0),
	}
}

// ChatCompletion implements llm.Client.ChatCompletion
func (m *MockClient) ChatCompletion(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	m.mu.Lock()
	m.ChatCalls = append(m.ChatCalls, req)
	m.mu.Unlock()

	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, req)
	}

	return MockResponse("This is a mock response.", req.Model), nil
}

// CallCount returns the number of completion calls made
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ChatCalls)
}

// MockResponse builds a single-choice response with the given content
func MockResponse(content, model string) *llm.ChatResponse {
	resp := &llm.ChatResponse{
		ID:      "mock-completion-1",
		Object:  "chat.completion",
		Created: 1234567890,
		Model:   model,
	}
	resp.Choices = make([]struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	}, 1)
	resp.Choices[0].Message.Role = "assistant"
	resp.Choices[0].Message.Content = content
	resp.Choices[0].FinishReason = "stop"
	return resp
}
