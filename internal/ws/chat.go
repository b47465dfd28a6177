package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/haventalk/haventalk-be/internal/api/middleware"
	"github.com/haventalk/haventalk-be/internal/chat"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Origin filtering happens at the CORS layer
	},
}

// messagesPerMinute caps how fast a single connection may send.
const messagesPerMinute = 20

// ChatHandler handles WebSocket chat connections
type ChatHandler struct {
	engine    *chat.Engine
	jwtSecret string
	revoker   *middleware.Revoker
	logger    *zap.Logger
}

// NewChatHandler creates a new WebSocket chat handler
func NewChatHandler(engine *chat.Engine, jwtSecret string, revoker *middleware.Revoker, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		engine:    engine,
		jwtSecret: jwtSecret,
		revoker:   revoker,
		logger:    logger,
	}
}

// IncomingMessage represents a message from the client
type IncomingMessage struct {
	Message      string `json:"message"`
	SessionTitle string `json:"session_title"`
	Model        string `json:"model,omitempty"`
}

// OutgoingMessage represents a message to the client
type OutgoingMessage struct {
	Type    string `json:"type"` // "message", "error", "done"
	Content string `json:"content,omitempty"`
	Refused bool   `json:"refused,omitempty"`
}

// HandleChat authenticates the caller, upgrades the connection, and runs
// the read loop until the client goes away.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	token := middleware.TokenFromRequest(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
		return
	}

	claims, err := middleware.ParseToken(token, h.jwtSecret)
	if err != nil || h.revoker.IsRevoked(claims.ID) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	userID := claims.UserID
	limiter := middleware.NewWebSocketLimiter(messagesPerMinute)

	h.logger.Info("websocket connected", zap.String("user_id", userID))

	for {
		var msg IncomingMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn("websocket read error", zap.Error(err))
			}
			break
		}

		if !limiter.Allow() {
			h.sendError(conn, "Rate limit exceeded. Please slow down.")
			continue
		}

		result, err := h.engine.SendMessage(c.Request.Context(), chat.SendRequest{
			UserID:  userID,
			Title:   msg.SessionTitle,
			Model:   msg.Model,
			Message: msg.Message,
		})
		if err != nil {
			h.logger.Warn("websocket message failed",
				zap.String("user_id", userID), zap.Error(err))
			h.sendError(conn, err.Error())
			continue
		}

		h.send(conn, OutgoingMessage{Type: "message", Content: result.Reply, Refused: result.Refused})
		h.send(conn, OutgoingMessage{Type: "done"})
	}
}

func (h *ChatHandler) send(conn *websocket.Conn, msg OutgoingMessage) {
	if err := conn.WriteJSON(msg); err != nil {
		h.logger.Warn("websocket write failed", zap.Error(err))
	}
}

func (h *ChatHandler) sendError(conn *websocket.Conn, message string) {
	h.send(conn, OutgoingMessage{Type: "error", Content: message})
}
