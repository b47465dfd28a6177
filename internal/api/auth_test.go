package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/haventalk/haventalk-be/internal/api/middleware"
	"github.com/haventalk/haventalk-be/internal/db"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func setupAuthTest(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, *middleware.Revoker) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	revoker := middleware.NewRevoker()
	handler := NewAuthHandler(db.New(sqlDB), testSecret, revoker, zap.NewNop())

	r := gin.New()
	auth := r.Group("/api/auth")
	auth.POST("/signup", handler.Signup)
	auth.POST("/login", handler.Login)

	protected := auth.Group("")
	protected.Use(middleware.JWTAuth(testSecret, revoker))
	protected.POST("/logout", handler.Logout)
	protected.GET("/me", handler.Me)

	return r, mock, revoker
}

func postJSON(r *gin.Engine, path string, body any, token string) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signTestToken(t *testing.T, userID, username string) string {
	t.Helper()
	claims := &middleware.JWTClaims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestSignup_Success(t *testing.T) {
	r, mock, _ := setupAuthTest(t)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), "sam", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
			AddRow("u-1", "sam", "hash", time.Now()))

	w := postJSON(r, "/api/auth/signup", gin.H{"username": "sam", "password": "password123"}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "sam", resp.User.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignup_DuplicateUsername(t *testing.T) {
	r, mock, _ := setupAuthTest(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505"})

	w := postJSON(r, "/api/auth/signup", gin.H{"username": "sam", "password": "password123"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestSignup_MissingFields(t *testing.T) {
	r, _, _ := setupAuthTest(t)

	w := postJSON(r, "/api/auth/signup", gin.H{"username": "sam"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(r, "/api/auth/signup", gin.H{"username": "sam", "password": "short"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code, "passwords under 8 characters are rejected")
}

func TestLogin_Success(t *testing.T) {
	r, mock, _ := setupAuthTest(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery("FROM users").
		WithArgs("sam").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
			AddRow("u-1", "sam", string(hash), time.Now()))

	w := postJSON(r, "/api/auth/login", gin.H{"username": "sam", "password": "password123"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
}

func TestLogin_WrongPassword(t *testing.T) {
	r, mock, _ := setupAuthTest(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery("FROM users").
		WithArgs("sam").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
			AddRow("u-1", "sam", string(hash), time.Now()))

	w := postJSON(r, "/api/auth/login", gin.H{"username": "sam", "password": "wrong-password"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_UnknownUser(t *testing.T) {
	r, mock, _ := setupAuthTest(t)

	mock.ExpectQuery("FROM users").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}))

	w := postJSON(r, "/api/auth/login", gin.H{"username": "ghost", "password": "password123"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout_RevokesToken(t *testing.T) {
	r, mock, _ := setupAuthTest(t)
	token := signTestToken(t, "u-1", "sam")

	// The token works before logout.
	mock.ExpectQuery("FROM users").
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
			AddRow("u-1", "sam", "hash", time.Now()))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(r, "/api/auth/logout", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	// And is rejected afterwards.
	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMe_RequiresToken(t *testing.T) {
	r, _, _ := setupAuthTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
