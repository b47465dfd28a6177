package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/haventalk/haventalk-be/internal/db"
	"github.com/haventalk/haventalk-be/internal/formatter"
	"github.com/haventalk/haventalk-be/internal/language"
	"github.com/haventalk/haventalk-be/internal/privacy"
	"github.com/haventalk/haventalk-be/pkg/llm"
	"go.uber.org/zap"
)

// systemPrompt pins the upstream model to the therapy domain. It is the
// first message of every completion request.
const systemPrompt = "You are a professional therapy doctor specializing in mental health. " +
	"Only answer questions related to therapy, mental health, emotional wellbeing, and related topics. " +
	"If a question is not related to therapy, politely decline to answer and ask the user to ask a therapy-related question."

// refusalMessage is returned without calling the upstream model when the
// classifier rejects a message.
const refusalMessage = "I'm sorry, I can only answer questions related to therapy and mental health. " +
	"Please ask a therapy-related question."

// AvailableModels is the fixed list exposed to clients.
var AvailableModels = []string{"grok", "grok-mini"}

// DefaultModel is used when a chat request does not name a model.
const DefaultModel = "grok"

// Interfaces for dependencies

type ClassifierInterface interface {
	IsInDomain(text string) bool
}

type BridgeInterface interface {
	ToEnglish(ctx context.Context, text string) (english, detectedLang string, err error)
	FromEnglish(ctx context.Context, text, lang string) string
}

type StoreInterface interface {
	GetConversationByTitle(ctx context.Context, userID, title string) (*db.Conversation, error)
	AppendExchange(ctx context.Context, conversationID string, ex db.Exchange) (*db.Exchange, error)
}

// Engine runs the message flow: bridge in, classify, complete, reformat,
// bridge out, persist. It is transport-agnostic; HTTP and WebSocket handlers
// both drive it.
type Engine struct {
	classifier ClassifierInterface
	bridge     BridgeInterface // nil when the translation variant is disabled
	llmClient  llm.Client
	store      StoreInterface
	logger     *zap.Logger

	maxTokens   int
	temperature float64
	topP        float64
}

// NewEngine creates a chat engine. A nil bridge disables translation: the
// raw message is classified and replies are returned as produced.
func NewEngine(
	cls ClassifierInterface,
	bridge BridgeInterface,
	client llm.Client,
	store StoreInterface,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		classifier:  cls,
		bridge:      bridge,
		llmClient:   client,
		store:       store,
		logger:      logger,
		maxTokens:   1024,
		temperature: 0.7,
		topP:        0.9,
	}
}

// SendRequest contains all data needed to process one message.
type SendRequest struct {
	UserID  string
	Title   string
	Model   string
	Message string
}

// SendResult is the outcome of a processed message.
type SendResult struct {
	Reply   string
	Refused bool
}

// SendMessage processes one chat turn and appends the exchange to the named
// conversation. The conversation must already exist for the user.
func (e *Engine) SendMessage(ctx context.Context, req SendRequest) (*SendResult, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, ErrEmptyMessage
	}
	if req.Title == "" {
		return nil, ErrTitleRequired
	}
	if req.Model == "" {
		req.Model = DefaultModel
	}

	conv, err := e.store.GetConversationByTitle(ctx, req.UserID, req.Title)
	if err != nil {
		return nil, fmt.Errorf("failed to look up conversation: %w", err)
	}
	if conv == nil {
		return nil, ErrConversationNotFound
	}

	if privacy.ContainsPII(req.Message) {
		e.logger.Warn("potential PII in message", zap.String("user_id", req.UserID))
	}

	// Bridge the message into English for classification and the model.
	messageEN := req.Message
	detectedLang := language.DefaultLanguage
	if e.bridge != nil {
		messageEN, detectedLang, err = e.bridge.ToEnglish(ctx, req.Message)
		if err != nil {
			return nil, &TranslationError{Err: err}
		}
	}

	e.logger.Info("processing message",
		zap.String("user_id", req.UserID),
		zap.String("detected_lang", detectedLang),
		zap.String("model", req.Model))

	if !e.classifier.IsInDomain(messageEN) {
		e.logger.Info("message rejected as off-domain",
			zap.String("user_id", req.UserID))

		refusal := refusalMessage
		if e.bridge != nil {
			refusal = e.bridge.FromEnglish(ctx, refusalMessage, detectedLang)
		}

		if _, err := e.store.AppendExchange(ctx, conv.ID, db.Exchange{
			UserText:    req.Message,
			UserTextEN:  messageEN,
			ReplyText:   refusal,
			ReplyTextEN: refusalMessage,
		}); err != nil {
			return nil, fmt.Errorf("failed to append exchange: %w", err)
		}

		return &SendResult{Reply: refusal, Refused: true}, nil
	}

	chatReq := llm.ChatRequest{
		Model: req.Model,
		Messages: []llm.ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: privacy.Redact(messageEN)},
		},
		Temperature: e.temperature,
		TopP:        e.topP,
		MaxTokens:   e.maxTokens,
	}

	resp, err := e.llmClient.ChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &UpstreamError{Err: fmt.Errorf("no choices in response")}
	}

	replyEN := formatter.Reformat(resp.Choices[0].Message.Content)

	reply := replyEN
	if e.bridge != nil {
		// Output translation is non-fatal: on provider exhaustion the
		// bridge hands back English with an advisory note.
		reply = e.bridge.FromEnglish(ctx, replyEN, detectedLang)
	}

	if _, err := e.store.AppendExchange(ctx, conv.ID, db.Exchange{
		UserText:    req.Message,
		UserTextEN:  messageEN,
		ReplyText:   reply,
		ReplyTextEN: replyEN,
	}); err != nil {
		return nil, fmt.Errorf("failed to append exchange: %w", err)
	}

	return &SendResult{Reply: reply}, nil
}
