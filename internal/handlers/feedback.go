package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/merahburam/ameo-assets/internal/ai"
	"github.com/merahburam/ameo-assets/internal/observability"
	"github.com/merahburam/ameo-assets/internal/telemetry"
)

// FeedbackHandler proxies design-feedback requests to the AI provider.
type FeedbackHandler struct {
	client  ai.Client
	emitter *telemetry.EventEmitter
}

// NewFeedbackHandler builds a FeedbackHandler.
func NewFeedbackHandler(client ai.Client, emitter *telemetry.EventEmitter) *FeedbackHandler {
	return &FeedbackHandler{client: client, emitter: emitter}
}

// GenerateFeedback asks the model for design feedback. Provider or parsing
// failures degrade to the canned feedback list, never to an error response.
func (h *FeedbackHandler) GenerateFeedback(c *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	items := ai.FallbackFeedback()
	source := "fallback"

	raw, err := h.client.Complete(c.Request.Context(), ai.FeedbackSystemPrompt, ai.FeedbackUserPrompt(req.Title, req.Description))
	if err != nil {
		log.Printf("feedback completion failed: %v", err)
	} else if parsed := ai.ParseFeedbackItems(raw); len(parsed) > 0 {
		items = parsed
		source = "model"
	} else {
		log.Printf("feedback response unparseable, using fallback")
	}

	observability.ObserveAIRequest("feedback", source, time.Since(start))
	h.emitter.Emit(c.Request.Context(), "ai.feedback_generated", "feedback_generated", requestIDFromContext(c), userIDFromContext(c), gin.H{
		"source":     source,
		"item_count": len(items),
	})

	c.JSON(http.StatusOK, gin.H{"items": items, "source": source})
}
