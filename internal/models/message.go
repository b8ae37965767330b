package models

import "time"

// Message represents a direct message.
type Message struct {
	ID             int       `db:"id" json:"id"`
	ConversationID int       `db:"conversation_id" json:"conversation_id"`
	SenderID       int       `db:"sender_id" json:"sender_id"`
	Content        string    `db:"content" json:"content"`
	Read           bool      `db:"read" json:"read"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// ConversationEvent is broadcasted through websockets.
type ConversationEvent struct {
	Type    string   `json:"type"`
	Message *Message `json:"message,omitempty"`
	UserID  int      `json:"user_id,omitempty"`
	Typing  *bool    `json:"typing,omitempty"`
}
