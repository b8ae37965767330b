package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/merahburam/ameo-assets/internal/models"
)

// MessageRepository defines interactions for direct messages.
type MessageRepository interface {
	CreateMessage(ctx context.Context, conversationID int, senderID int, content string) (models.Message, error)
	ListMessages(ctx context.Context, conversationID int) ([]models.Message, error)
	MarkMessagesRead(ctx context.Context, conversationID int, readerID int) error
}

// MessageRepo is a sqlx-backed repository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// CreateMessage stores a message in a conversation.
func (r *MessageRepo) CreateMessage(ctx context.Context, conversationID int, senderID int, content string) (models.Message, error) {
	var msg models.Message
	err := r.db.QueryRowxContext(ctx, `INSERT INTO messages (conversation_id, sender_id, content) VALUES ($1, $2, $3) RETURNING id, conversation_id, sender_id, content, read, created_at`, conversationID, senderID, content).
		StructScan(&msg)
	return msg, err
}

// ListMessages returns the conversation's messages in send order.
func (r *MessageRepo) ListMessages(ctx context.Context, conversationID int) ([]models.Message, error) {
	query := `SELECT id, conversation_id, sender_id, content, read, created_at
        FROM messages
        WHERE conversation_id=$1
        ORDER BY created_at ASC`
	var msgs []models.Message
	err := r.db.SelectContext(ctx, &msgs, query, conversationID)
	return msgs, err
}

// MarkMessagesRead flags every message sent to the reader as read.
func (r *MessageRepo) MarkMessagesRead(ctx context.Context, conversationID int, readerID int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE messages SET read = TRUE WHERE conversation_id=$1 AND sender_id<>$2 AND read = FALSE`, conversationID, readerID)
	return err
}
