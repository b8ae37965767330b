package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/merahburam/ameo-assets/internal/telemetry"
)

// RegisterDebugRoutes wires debug-only endpoints.
func RegisterDebugRoutes(router *gin.Engine, emitter *telemetry.EventEmitter, enabled bool) {
	if !enabled {
		return
	}

	router.GET("/debug/event-test", func(c *gin.Context) {
		if emitter == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "event emitter not configured"})
			return
		}
		emitter.Emit(c.Request.Context(), "debug.event_test", "event_test", requestIDFromContext(c), userIDFromContext(c), gin.H{"status": "ok"})
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
