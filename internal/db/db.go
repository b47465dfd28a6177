package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Store errors surfaced to handlers.
var (
	ErrDuplicateUsername = errors.New("username already registered")
	ErrDuplicateTitle    = errors.New("session title already exists")
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// NewFromURL creates a database connection from a connection URL
func NewFromURL(databaseURL string) (*DB, error) {
	sqlDB, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{sqlDB}, nil
}

// New wraps an existing connection, used by tests with sqlmock.
func New(sqlDB *sql.DB) *DB {
	return &DB{sqlDB}
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// User represents a registered user
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Conversation is a titled, ordered sequence of exchanges owned by one user
type Conversation struct {
	ID        string     `json:"id"`
	UserID    string     `json:"-"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	Exchanges []Exchange `json:"messages"`
}

// Exchange is one user-message/reply turn. Immutable once appended.
type Exchange struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"-"`
	UserText       string    `json:"user"`
	UserTextEN     string    `json:"user_en"`
	ReplyText      string    `json:"reply"`
	ReplyTextEN    string    `json:"reply_en"`
	CreatedAt      time.Time `json:"created_at"`
}

// isUniqueViolation reports whether err is a Postgres unique-constraint error
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
