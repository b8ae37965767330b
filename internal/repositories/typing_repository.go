package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/merahburam/ameo-assets/internal/models"
)

// TypingTTL bounds how long a typing flag stays meaningful. A client that
// stops sending updates reads as not typing after this window.
const TypingTTL = 10 * time.Second

// TypingRepository manages per-user typing indicators.
type TypingRepository interface {
	SetTyping(ctx context.Context, conversationID int, userID int, typing bool) error
	GetTyping(ctx context.Context, conversationID int, userID int) (models.TypingStatus, error)
}

// TypingRepo is a sqlx implementation of TypingRepository.
type TypingRepo struct {
	db *sqlx.DB
}

// NewTypingRepo constructs a TypingRepo.
func NewTypingRepo(db *sqlx.DB) *TypingRepo {
	return &TypingRepo{db: db}
}

// SetTyping upserts the typing flag for a user in a conversation.
func (r *TypingRepo) SetTyping(ctx context.Context, conversationID int, userID int, typing bool) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO typing_status (conversation_id, user_id, typing, updated_at) VALUES ($1, $2, $3, NOW())
        ON CONFLICT (conversation_id, user_id) DO UPDATE SET typing = EXCLUDED.typing, updated_at = NOW()`, conversationID, userID, typing)
	return err
}

// GetTyping returns the user's typing state. Missing or stale rows read as
// not typing.
func (r *TypingRepo) GetTyping(ctx context.Context, conversationID int, userID int) (models.TypingStatus, error) {
	var status models.TypingStatus
	err := r.db.GetContext(ctx, &status, `SELECT conversation_id, user_id, typing, updated_at FROM typing_status WHERE conversation_id=$1 AND user_id=$2`, conversationID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.TypingStatus{ConversationID: conversationID, UserID: userID}, nil
	}
	if err != nil {
		return models.TypingStatus{}, err
	}
	return effectiveTyping(status, time.Now()), nil
}

// effectiveTyping applies the staleness window: a typing flag older than
// TypingTTL reads as not typing.
func effectiveTyping(status models.TypingStatus, now time.Time) models.TypingStatus {
	if status.Typing && now.Sub(status.UpdatedAt) > TypingTTL {
		status.Typing = false
	}
	return status
}
