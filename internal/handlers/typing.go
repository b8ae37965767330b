package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/merahburam/ameo-assets/internal/repositories"
	"github.com/merahburam/ameo-assets/internal/ws"
)

// TypingHandler manages typing indicators.
type TypingHandler struct {
	conversationRepo repositories.ConversationRepository
	typingRepo       repositories.TypingRepository
	hub              *ws.Hub
}

// NewTypingHandler builds a TypingHandler.
func NewTypingHandler(conversationRepo repositories.ConversationRepository, typingRepo repositories.TypingRepository, hub *ws.Hub) *TypingHandler {
	return &TypingHandler{conversationRepo: conversationRepo, typingRepo: typingRepo, hub: hub}
}

// SetTyping updates the caller's typing flag and broadcasts the change.
func (h *TypingHandler) SetTyping(c *gin.Context) {
	conversationID, err := strconv.Atoi(c.Param("conversation_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
		return
	}

	userID := c.GetInt("userID")
	member, err := h.conversationRepo.IsParticipant(c.Request.Context(), conversationID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to verify membership"})
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a conversation member"})
		return
	}

	var req struct {
		Typing *bool `json:"typing" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.typingRepo.SetTyping(c.Request.Context(), conversationID, userID, *req.Typing); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update typing status"})
		return
	}

	h.hub.BroadcastTyping(conversationID, userID, *req.Typing)
	c.Status(http.StatusNoContent)
}

// GetTyping returns the partner's effective typing state.
func (h *TypingHandler) GetTyping(c *gin.Context) {
	conversationID, err := strconv.Atoi(c.Param("conversation_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
		return
	}

	userID := c.GetInt("userID")
	conv, err := h.conversationRepo.GetConversation(c.Request.Context(), conversationID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrConversationNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "conversation not found"})
		return
	}
	if !isParticipant(conv, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a conversation member"})
		return
	}

	partnerID := conv.User1ID
	if partnerID == userID {
		partnerID = conv.User2ID
	}

	status, err := h.typingRepo.GetTyping(c.Request.Context(), conversationID, partnerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load typing status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": partnerID, "typing": status.Typing})
}
