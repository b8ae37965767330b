package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/merahburam/ameo-assets/internal/models"
	"github.com/merahburam/ameo-assets/internal/observability"
)

// Hub maintains active websocket rooms, one per conversation.
type Hub struct {
	rooms    map[int]map[*websocket.Conn]bool
	connInfo map[int]map[*websocket.Conn]ConnInfo
	mu       sync.RWMutex
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		rooms:    make(map[int]map[*websocket.Conn]bool),
		connInfo: make(map[int]map[*websocket.Conn]ConnInfo),
	}
}

// AddClient registers a websocket connection to a conversation room.
func (h *Hub) AddClient(conversationID int, conn *websocket.Conn, info ConnInfo) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[conversationID]; !ok {
		h.rooms[conversationID] = make(map[*websocket.Conn]bool)
	}
	h.rooms[conversationID][conn] = true
	if _, ok := h.connInfo[conversationID]; !ok {
		h.connInfo[conversationID] = make(map[*websocket.Conn]ConnInfo)
	}
	h.connInfo[conversationID][conn] = info
}

// RemoveClient removes a websocket connection from its room.
func (h *Hub) RemoveClient(conversationID int, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(conversationID, conn)
}

func (h *Hub) removeLocked(conversationID int, conn *websocket.Conn) {
	if conns, ok := h.rooms[conversationID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.rooms, conversationID)
		}
	}
	if infos, ok := h.connInfo[conversationID]; ok {
		delete(infos, conn)
		if len(infos) == 0 {
			delete(h.connInfo, conversationID)
		}
	}
}

// BroadcastMessage sends a new message to all clients in the conversation.
func (h *Hub) BroadcastMessage(conversationID int, msg models.Message) {
	h.broadcast(conversationID, models.ConversationEvent{Type: "message", Message: &msg})
}

// BroadcastTyping notifies clients of a typing state change.
func (h *Hub) BroadcastTyping(conversationID int, userID int, typing bool) {
	h.broadcast(conversationID, models.ConversationEvent{Type: "typing", UserID: userID, Typing: &typing})
}

// BroadcastConversationDeleted tells clients the conversation is gone.
func (h *Hub) BroadcastConversationDeleted(conversationID int) {
	h.broadcast(conversationID, models.ConversationEvent{Type: "conversation_deleted"})
}

type wsFailure struct {
	info ConnInfo
	err  error
}

// broadcast writes the event to every connection in the room. The hub lock is
// held across the writes: gorilla/websocket allows only one concurrent writer
// per connection, and the room map must not change mid-iteration.
func (h *Hub) broadcast(conversationID int, event models.ConversationEvent) {
	payload, _ := json.Marshal(event)

	var failures []wsFailure
	h.mu.Lock()
	for conn := range h.rooms[conversationID] {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("websocket write error: %v", err)
			conn.Close()
			if info, ok := h.connInfo[conversationID][conn]; ok {
				failures = append(failures, wsFailure{info: info, err: err})
			}
			h.removeLocked(conversationID, conn)
		}
	}
	h.mu.Unlock()

	for _, f := range failures {
		h.publishWSError(conversationID, f.info, f.err)
	}
}

func (h *Hub) publishWSError(conversationID int, info ConnInfo, err error) {
	payload := map[string]interface{}{
		"ws": map[string]interface{}{
			"conversation_id": conversationID,
			"event":           "ws_error",
			"conn_id":         info.ConnID,
			"duration_ms":     time.Since(info.ConnectedAt).Milliseconds(),
			"reason":          err.Error(),
		},
		"identity": map[string]interface{}{
			"user_id":   info.UserID,
			"device_id": info.DeviceID,
			"ip":        info.IP,
		},
	}

	headers := observability.BuildHeaders(info.RequestID, info.TraceID)
	_ = observability.PublishEvent(context.Background(), "ws_events.conversations", observability.EventEnvelope{
		EventType: "ws_events",
		EventName: "ws_error",
		Payload:   payload,
	}, headers)
	observability.IncWSEvent("ws_error")
}

func (h *Hub) getConnInfo(conversationID int, conn *websocket.Conn) (ConnInfo, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if infos, ok := h.connInfo[conversationID]; ok {
		info, exists := infos[conn]
		return info, exists
	}
	return ConnInfo{}, false
}
