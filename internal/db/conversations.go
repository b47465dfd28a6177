package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// CreateConversation creates an empty conversation for the user. The
// (user_id, title) pair is unique; a duplicate title returns
// ErrDuplicateTitle without touching other rows.
func (db *DB) CreateConversation(ctx context.Context, userID, title string) (*Conversation, error) {
	query := `
		INSERT INTO conversations (id, user_id, title)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, title, created_at
	`

	row := db.QueryRowContext(ctx, query, uuid.New().String(), userID, title)

	var c Conversation
	if err := row.Scan(&c.ID, &c.UserID, &c.Title, &c.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateTitle
		}
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	return &c, nil
}

// GetConversationByTitle retrieves a user's conversation by title.
// Returns (nil, nil) when absent.
func (db *DB) GetConversationByTitle(ctx context.Context, userID, title string) (*Conversation, error) {
	query := `
		SELECT id, user_id, title, created_at
		FROM conversations
		WHERE user_id = $1 AND title = $2
	`

	row := db.QueryRowContext(ctx, query, userID, title)

	var c Conversation
	if err := row.Scan(&c.ID, &c.UserID, &c.Title, &c.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}

	return &c, nil
}

// AppendExchange appends one completed turn to a conversation.
func (db *DB) AppendExchange(ctx context.Context, conversationID string, ex Exchange) (*Exchange, error) {
	query := `
		INSERT INTO exchanges (id, conversation_id, user_text, user_text_en, reply_text, reply_text_en)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, conversation_id, user_text, user_text_en, reply_text, reply_text_en, created_at
	`

	row := db.QueryRowContext(ctx, query,
		uuid.New().String(), conversationID,
		ex.UserText, ex.UserTextEN, ex.ReplyText, ex.ReplyTextEN)

	var saved Exchange
	if err := row.Scan(&saved.ID, &saved.ConversationID,
		&saved.UserText, &saved.UserTextEN,
		&saved.ReplyText, &saved.ReplyTextEN,
		&saved.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to append exchange: %w", err)
	}

	return &saved, nil
}

// GetHistory returns all of a user's conversations with their exchanges,
// conversations in creation order and exchanges in append order.
func (db *DB) GetHistory(ctx context.Context, userID string) ([]Conversation, error) {
	convQuery := `
		SELECT id, user_id, title, created_at
		FROM conversations
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := db.QueryContext(ctx, convQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversations: %w", err)
	}
	defer rows.Close()

	conversations := make([]Conversation, 0)
	index := make(map[string]int)
	for rows.Next() {
		var c Conversation
		if err := rows.Scan(&c.ID, &c.UserID, &c.Title, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		c.Exchanges = make([]Exchange, 0)
		index[c.ID] = len(conversations)
		conversations = append(conversations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating conversations: %w", err)
	}

	if len(conversations) == 0 {
		return conversations, nil
	}

	exQuery := `
		SELECT e.id, e.conversation_id, e.user_text, e.user_text_en, e.reply_text, e.reply_text_en, e.created_at
		FROM exchanges e
		JOIN conversations c ON c.id = e.conversation_id
		WHERE c.user_id = $1
		ORDER BY e.created_at ASC
	`

	exRows, err := db.QueryContext(ctx, exQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchanges: %w", err)
	}
	defer exRows.Close()

	for exRows.Next() {
		var ex Exchange
		if err := exRows.Scan(&ex.ID, &ex.ConversationID,
			&ex.UserText, &ex.UserTextEN,
			&ex.ReplyText, &ex.ReplyTextEN,
			&ex.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan exchange: %w", err)
		}
		if i, ok := index[ex.ConversationID]; ok {
			conversations[i].Exchanges = append(conversations[i].Exchanges, ex)
		}
	}
	if err := exRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exchanges: %w", err)
	}

	return conversations, nil
}

// ClearHistory removes all conversations (and, via cascade, exchanges) for
// one user. Other users' rows are untouched.
func (db *DB) ClearHistory(ctx context.Context, userID string) error {
	query := "DELETE FROM conversations WHERE user_id = $1"

	if _, err := db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	return nil
}
