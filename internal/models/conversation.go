package models

import "time"

// Conversation represents a direct-message thread between exactly two users.
type Conversation struct {
	ID        int       `db:"id" json:"id"`
	User1ID   int       `db:"user1_id" json:"user1_id"`
	User2ID   int       `db:"user2_id" json:"user2_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ConversationSummary is the API-friendly view of a conversation for one user.
type ConversationSummary struct {
	ConversationID int       `db:"id" json:"conversation_id"`
	PartnerID      int       `json:"partner_id"`
	Created        time.Time `db:"created_at" json:"created_at"`
}

// TypingStatus models the per-user typing indicator inside a conversation.
type TypingStatus struct {
	ConversationID int       `db:"conversation_id" json:"conversation_id"`
	UserID         int       `db:"user_id" json:"user_id"`
	Typing         bool      `db:"typing" json:"typing"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
