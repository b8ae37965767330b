package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/merahburam/ameo-assets/internal/models"
)

func TestEffectiveTypingFresh(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	status := models.TypingStatus{ConversationID: 1, UserID: 2, Typing: true, UpdatedAt: now.Add(-3 * time.Second)}

	got := effectiveTyping(status, now)
	assert.True(t, got.Typing)
}

func TestEffectiveTypingStale(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	status := models.TypingStatus{ConversationID: 1, UserID: 2, Typing: true, UpdatedAt: now.Add(-TypingTTL - time.Second)}

	got := effectiveTyping(status, now)
	assert.False(t, got.Typing)
}

func TestEffectiveTypingAtBoundary(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	status := models.TypingStatus{ConversationID: 1, UserID: 2, Typing: true, UpdatedAt: now.Add(-TypingTTL)}

	got := effectiveTyping(status, now)
	assert.True(t, got.Typing, "exactly at the window edge still counts as typing")
}

func TestEffectiveTypingFalseStaysFalse(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	status := models.TypingStatus{ConversationID: 1, UserID: 2, Typing: false, UpdatedAt: now.Add(-time.Hour)}

	got := effectiveTyping(status, now)
	assert.False(t, got.Typing)
}
