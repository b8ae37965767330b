package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/merahburam/ameo-assets/internal/models"
	"github.com/merahburam/ameo-assets/internal/repositories"
	"github.com/merahburam/ameo-assets/internal/telemetry"
	"github.com/merahburam/ameo-assets/internal/ws"
)

// MessageHandler manages message endpoints within a conversation.
type MessageHandler struct {
	conversationRepo repositories.ConversationRepository
	messageRepo      repositories.MessageRepository
	userRepo         repositories.UserRepository
	hub              *ws.Hub
	emitter          *telemetry.EventEmitter
}

// NewMessageHandler builds a MessageHandler.
func NewMessageHandler(conversationRepo repositories.ConversationRepository, messageRepo repositories.MessageRepository, userRepo repositories.UserRepository, hub *ws.Hub, emitter *telemetry.EventEmitter) *MessageHandler {
	return &MessageHandler{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		userRepo:         userRepo,
		hub:              hub,
		emitter:          emitter,
	}
}

// ListMessages returns the conversation's messages and marks the partner's
// messages as read.
func (h *MessageHandler) ListMessages(c *gin.Context) {
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

	msgs, err := h.messageRepo.ListMessages(c.Request.Context(), conversationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}

	if err := h.messageRepo.MarkMessagesRead(c.Request.Context(), conversationID, userID); err != nil {
		log.Printf("mark messages read: %v", err)
	}

	senderIDs := make([]int, 0, len(msgs))
	senderIDSet := map[int]struct{}{}
	for _, m := range msgs {
		if _, ok := senderIDSet[m.SenderID]; !ok {
			senderIDSet[m.SenderID] = struct{}{}
			senderIDs = append(senderIDs, m.SenderID)
		}
	}

	senderNames, err := h.userRepo.BulkUsernames(c.Request.Context(), senderIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load senders"})
		return
	}

	type messageResponse struct {
		models.Message
		SenderUsername string `json:"sender_username,omitempty"`
	}

	resp := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		resp = append(resp, messageResponse{Message: m, SenderUsername: senderNames[m.SenderID]})
	}

	c.JSON(http.StatusOK, gin.H{"messages": resp})
}

// PostMessage stores a message and broadcasts it.
func (h *MessageHandler) PostMessage(c *gin.Context) {
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

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.messageRepo.CreateMessage(c.Request.Context(), conversationID, userID, req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store message"})
		return
	}

	h.hub.BroadcastMessage(conversationID, msg)
	h.emitter.Emit(c.Request.Context(), "dm.message_sent", "message_sent", requestIDFromContext(c), userIDFromContext(c), gin.H{
		"conversation_id": conversationID,
		"message_id":      msg.ID,
	})
	c.JSON(http.StatusCreated, msg)
}
