package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/merahburam/ameo-assets/internal/models"
	"github.com/merahburam/ameo-assets/internal/repositories"
	"github.com/merahburam/ameo-assets/internal/telemetry"
	"github.com/merahburam/ameo-assets/internal/ws"
)

// ConversationHandler manages direct-message conversation endpoints.
type ConversationHandler struct {
	conversationRepo repositories.ConversationRepository
	userRepo         repositories.UserRepository
	hub              *ws.Hub
	emitter          *telemetry.EventEmitter
}

// NewConversationHandler builds a ConversationHandler.
func NewConversationHandler(conversationRepo repositories.ConversationRepository, userRepo repositories.UserRepository, hub *ws.Hub, emitter *telemetry.EventEmitter) *ConversationHandler {
	return &ConversationHandler{
		conversationRepo: conversationRepo,
		userRepo:         userRepo,
		hub:              hub,
		emitter:          emitter,
	}
}

// ListConversations returns the conversations of the authenticated user.
func (h *ConversationHandler) ListConversations(c *gin.Context) {
	userID := c.GetInt("userID")

	conversations, err := h.conversationRepo.ListConversations(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load conversations"})
		return
	}

	partnerIDs := make([]int, 0, len(conversations))
	for _, conv := range conversations {
		partnerIDs = append(partnerIDs, conv.PartnerID)
	}

	usernameByID, err := h.userRepo.BulkUsernames(c.Request.Context(), partnerIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load partner info"})
		return
	}

	type conversationResponse struct {
		ConversationID  int       `json:"conversation_id"`
		PartnerID       int       `json:"partner_id"`
		PartnerUsername string    `json:"partner_username,omitempty"`
		CreatedAt       time.Time `json:"created_at"`
	}

	responses := make([]conversationResponse, 0, len(conversations))
	for _, conv := range conversations {
		responses = append(responses, conversationResponse{
			ConversationID:  conv.ConversationID,
			PartnerID:       conv.PartnerID,
			PartnerUsername: usernameByID[conv.PartnerID],
			CreatedAt:       conv.Created,
		})
	}

	c.JSON(http.StatusOK, gin.H{"conversations": responses})
}

// StartConversation creates or returns an existing conversation between users.
func (h *ConversationHandler) StartConversation(c *gin.Context) {
	var req struct {
		PartnerID int `json:"partner_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetInt("userID")
	if userID == req.PartnerID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot start conversation with yourself"})
		return
	}

	if _, err := h.userRepo.GetUserByID(c.Request.Context(), req.PartnerID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "partner not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load partner"})
		return
	}

	conv, err := h.conversationRepo.CreateOrGetConversation(c.Request.Context(), userID, req.PartnerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create conversation"})
		return
	}

	h.emitter.Emit(c.Request.Context(), "dm.conversation_started", "conversation_started", requestIDFromContext(c), userIDFromContext(c), gin.H{
		"conversation_id": conv.ID,
		"partner_id":      req.PartnerID,
	})
	c.JSON(http.StatusOK, gin.H{"conversation_id": conv.ID})
}

// DeleteConversation removes a conversation and everything hanging off it.
func (h *ConversationHandler) DeleteConversation(c *gin.Context) {
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

	if err := h.conversationRepo.DeleteConversation(c.Request.Context(), conversationID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete conversation"})
		return
	}

	h.hub.BroadcastConversationDeleted(conversationID)
	h.emitter.Emit(c.Request.Context(), "dm.conversation_deleted", "conversation_deleted", requestIDFromContext(c), userIDFromContext(c), gin.H{
		"conversation_id": conversationID,
	})
	c.Status(http.StatusNoContent)
}

func isParticipant(conv models.Conversation, userID int) bool {
	return conv.User1ID == userID || conv.User2ID == userID
}
