package repositories

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"github.com/jmoiron/sqlx"

	"github.com/merahburam/ameo-assets/internal/models"
)

var ErrConversationNotFound = errors.New("conversation not found")

// ConversationRepository abstracts conversation persistence.
type ConversationRepository interface {
	CreateOrGetConversation(ctx context.Context, userID int, partnerID int) (models.Conversation, error)
	GetConversation(ctx context.Context, conversationID int) (models.Conversation, error)
	IsParticipant(ctx context.Context, conversationID int, userID int) (bool, error)
	ListConversations(ctx context.Context, userID int) ([]models.ConversationSummary, error)
	DeleteConversation(ctx context.Context, conversationID int) error
}

// ConversationRepo is a sqlx implementation of ConversationRepository.
type ConversationRepo struct {
	db *sqlx.DB
}

// NewConversationRepo constructs a ConversationRepo.
func NewConversationRepo(db *sqlx.DB) *ConversationRepo {
	return &ConversationRepo{db: db}
}

// CreateOrGetConversation creates a conversation between two users if one does
// not already exist. The pair is stored normalized so the UNIQUE constraint
// holds regardless of who initiated.
func (r *ConversationRepo) CreateOrGetConversation(ctx context.Context, userID int, partnerID int) (models.Conversation, error) {
	if userID == partnerID {
		return models.Conversation{}, errors.New("cannot start conversation with self")
	}
	participants := []int{userID, partnerID}
	sort.Ints(participants)
	user1, user2 := participants[0], participants[1]

	var conv models.Conversation
	query := `SELECT id, user1_id, user2_id, created_at FROM conversations WHERE user1_id=$1 AND user2_id=$2`
	if err := r.db.GetContext(ctx, &conv, query, user1, user2); err != nil {
		if err != sql.ErrNoRows {
			return models.Conversation{}, err
		}
		if err := r.db.QueryRowxContext(ctx, `INSERT INTO conversations (user1_id, user2_id) VALUES ($1, $2) RETURNING id, user1_id, user2_id, created_at`, user1, user2).
			StructScan(&conv); err != nil {
			return models.Conversation{}, err
		}
	}
	return conv, nil
}

// GetConversation fetches a conversation by id.
func (r *ConversationRepo) GetConversation(ctx context.Context, conversationID int) (models.Conversation, error) {
	var conv models.Conversation
	err := r.db.GetContext(ctx, &conv, `SELECT id, user1_id, user2_id, created_at FROM conversations WHERE id=$1`, conversationID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Conversation{}, ErrConversationNotFound
	}
	return conv, err
}

// IsParticipant checks whether a user belongs to the conversation.
func (r *ConversationRepo) IsParticipant(ctx context.Context, conversationID int, userID int) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM conversations WHERE id=$1 AND (user1_id=$2 OR user2_id=$2))`, conversationID, userID)
	return exists, err
}

// ListConversations returns the user's conversations, newest first.
func (r *ConversationRepo) ListConversations(ctx context.Context, userID int) ([]models.ConversationSummary, error) {
	query := `SELECT id, user1_id, user2_id, created_at FROM conversations
        WHERE user1_id=$1 OR user2_id=$1
        ORDER BY created_at DESC`
	rows, err := r.db.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.ConversationSummary
	for rows.Next() {
		var conv models.Conversation
		if err := rows.StructScan(&conv); err != nil {
			return nil, err
		}
		partnerID := conv.User1ID
		if partnerID == userID {
			partnerID = conv.User2ID
		}
		result = append(result, models.ConversationSummary{ConversationID: conv.ID, PartnerID: partnerID, Created: conv.CreatedAt})
	}
	return result, rows.Err()
}

// DeleteConversation removes a conversation. Messages and typing rows go with
// it through ON DELETE CASCADE.
func (r *ConversationRepo) DeleteConversation(ctx context.Context, conversationID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM conversations WHERE id=$1`, conversationID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrConversationNotFound
	}
	return nil
}
