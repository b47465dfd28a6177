package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims are the claims carried by an access token.
type JWTClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Revoker tracks revoked token IDs so logout actually ends a session even
// though tokens are stateless. Entries are dropped once the token would
// have expired anyway.
type Revoker struct {
	revoked map[string]time.Time // jti -> token expiry
	mu      sync.RWMutex
}

// NewRevoker creates a revocation list with a background sweep.
func NewRevoker() *Revoker {
	r := &Revoker{revoked: make(map[string]time.Time)}
	go r.sweep()
	return r
}

// Revoke marks a token ID as revoked until its expiry.
func (r *Revoker) Revoke(jti string, expiresAt time.Time) {
	if jti == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[jti] = expiresAt
}

// IsRevoked reports whether a token ID has been revoked.
func (r *Revoker) IsRevoked(jti string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.revoked[jti]
	return ok
}

func (r *Revoker) sweep() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		r.mu.Lock()
		for jti, exp := range r.revoked {
			if now.After(exp) {
				delete(r.revoked, jti)
			}
		}
		r.mu.Unlock()
	}
}

// TokenFromRequest extracts the bearer token from the Authorization header,
// falling back to the "token" query parameter for WebSocket clients.
func TokenFromRequest(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Query("token")
}

// ParseToken validates a signed token string and returns its claims.
func ParseToken(tokenString, secret string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// JWTAuth validates the bearer token, rejects revoked tokens, and stores
// the caller's identity on the context.
func JWTAuth(secret string, revoker *Revoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := TokenFromRequest(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			c.Abort()
			return
		}

		claims, err := ParseToken(tokenString, secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		if revoker != nil && revoker.IsRevoked(claims.ID) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("jwt_claims", claims)
		c.Next()
	}
}

// GetUserID returns the authenticated user's ID from the context.
func GetUserID(c *gin.Context) string {
	return c.GetString("user_id")
}

// GetUsername returns the authenticated user's username from the context.
func GetUsername(c *gin.Context) string {
	return c.GetString("username")
}
