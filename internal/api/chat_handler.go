package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/haventalk/haventalk-be/internal/api/middleware"
	"github.com/haventalk/haventalk-be/internal/chat"
	"github.com/haventalk/haventalk-be/internal/db"
	"go.uber.org/zap"
)

// ChatHandler exposes the chat engine and conversation history over HTTP.
type ChatHandler struct {
	engine *chat.Engine
	db     *db.DB
	logger *zap.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(engine *chat.Engine, database *db.DB, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		engine: engine,
		db:     database,
		logger: logger,
	}
}

// ChatRequest represents one chat message
type ChatRequest struct {
	Message      string `json:"message"`
	SessionTitle string `json:"session_title"`
	Model        string `json:"model"`
}

// ChatResponse represents the reply to one chat message
type ChatResponse struct {
	Reply   string `json:"reply"`
	Refused bool   `json:"refused,omitempty"`
}

// CreateSessionRequest names a new conversation
type CreateSessionRequest struct {
	Title string `json:"title" binding:"required"`
}

// Models returns the models a client may select.
func (h *ChatHandler) Models(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"models":  chat.AvailableModels,
		"default": chat.DefaultModel,
	})
}

// CreateSession creates a named conversation for the caller. Titles are
// unique per user.
func (h *ChatHandler) CreateSession(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session title required"})
		return
	}

	conv, err := h.db.CreateConversation(c.Request.Context(), userID, req.Title)
	if err == db.ErrDuplicateTitle {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session title already exists"})
		return
	}
	if err != nil {
		h.logger.Error("failed to create session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusCreated, conv)
}

// Chat processes one message and returns the reply.
func (h *ChatHandler) Chat(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := h.engine.SendMessage(c.Request.Context(), chat.SendRequest{
		UserID:  userID,
		Title:   req.SessionTitle,
		Model:   req.Model,
		Message: req.Message,
	})
	if err != nil {
		h.respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Reply: result.Reply, Refused: result.Refused})
}

// History returns every conversation of the caller with all exchanges.
func (h *ChatHandler) History(c *gin.Context) {
	userID := middleware.GetUserID(c)

	history, err := h.db.GetHistory(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to load history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}

// ClearHistory deletes every conversation of the caller.
func (h *ChatHandler) ClearHistory(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if err := h.db.ClearHistory(c.Request.Context(), userID); err != nil {
		h.logger.Error("failed to clear history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "History cleared"})
}

// respondEngineError maps engine errors to HTTP status codes.
func (h *ChatHandler) respondEngineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, chat.ErrEmptyMessage),
		errors.Is(err, chat.ErrTitleRequired),
		errors.Is(err, chat.ErrConversationNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var upErr *chat.UpstreamError
	if errors.As(err, &upErr) {
		h.logger.Error("upstream API failure", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var trErr *chat.TranslationError
	if errors.As(err, &trErr) {
		h.logger.Error("translation failure", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Translation failed. Please try again."})
		return
	}

	h.logger.Error("chat request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
}
