package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/merahburam/ameo-assets/internal/ai"
	"github.com/merahburam/ameo-assets/internal/observability"
	"github.com/merahburam/ameo-assets/internal/telemetry"
)

// SpeechHandler proxies speech generation to the AI provider.
type SpeechHandler struct {
	client  ai.Client
	daily   *ai.DailyMemo
	emitter *telemetry.EventEmitter
}

// NewSpeechHandler builds a SpeechHandler.
func NewSpeechHandler(client ai.Client, daily *ai.DailyMemo, emitter *telemetry.EventEmitter) *SpeechHandler {
	return &SpeechHandler{client: client, daily: daily, emitter: emitter}
}

// DailySpeech returns today's speech, generating it at most once per day.
func (h *SpeechHandler) DailySpeech(c *gin.Context) {
	source := "cache"
	text, _ := h.daily.GetOrFill(func() string {
		generated, generatedSource := h.generate(c, "")
		source = generatedSource
		return generated
	})
	c.JSON(http.StatusOK, gin.H{"text": text, "source": source})
}

// GenerateSpeech returns a fresh speech for the requested topic.
func (h *SpeechHandler) GenerateSpeech(c *gin.Context) {
	var req struct {
		Topic string `json:"topic"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text, source := h.generate(c, req.Topic)
	c.JSON(http.StatusOK, gin.H{"topic": req.Topic, "text": text, "source": source})
}

func (h *SpeechHandler) generate(c *gin.Context, topic string) (string, string) {
	start := time.Now()
	text := ai.FallbackSpeech()
	source := "fallback"

	raw, err := h.client.Complete(c.Request.Context(), ai.SpeechSystemPrompt, ai.SpeechUserPrompt(topic))
	if err != nil {
		log.Printf("speech completion failed: %v", err)
	} else if cleaned := ai.StripMarkdown(raw); strings.TrimSpace(cleaned) != "" {
		text = cleaned
		source = "model"
	} else {
		log.Printf("speech response empty, using fallback")
	}

	observability.ObserveAIRequest("speech", source, time.Since(start))
	h.emitter.Emit(c.Request.Context(), "ai.speech_generated", "speech_generated", requestIDFromContext(c), userIDFromContext(c), gin.H{
		"source": source,
		"topic":  topic,
	})
	return text, source
}
