package api

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// WSMessage is the envelope pushed to console subscribers.
type WSMessage struct {
	Type    string      `json:"type"`              // e.g. status
	RuleID  string      `json:"ruleId,omitempty"`  // subject rule
	Payload interface{} `json:"payload,omitempty"` // arbitrary JSON
}

// WSHub fans ingested status events out to connected console UIs.
type WSHub struct {
	upgrader websocket.Upgrader
	mu       sync.RWMutex
	subs     map[*websocket.Conn]struct{}
}

func NewWSHub() *WSHub {
	return &WSHub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		subs: map[*websocket.Conn]struct{}{},
	}
}

// HandleEvents upgrades a console connection and subscribes it to events.
func (h *WSHub) HandleEvents(w http.ResponseWriter, r *http.Request) {
	c, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	h.mu.Lock()
	h.subs[c] = struct{}{}
	h.mu.Unlock()
	log.Printf("console subscriber connected (%d total)", h.count())
	go h.readLoop(c)
}

// Broadcast sends msg to every subscriber, dropping dead connections.
func (h *WSHub) Broadcast(msg WSMessage) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.subs))
	for c := range h.subs {
		conns = append(conns, c)
	}
	h.mu.RUnlock()
	for _, c := range conns {
		if err := c.WriteJSON(msg); err != nil {
			go h.closeSub(c)
		}
	}
}

func (h *WSHub) readLoop(c *websocket.Conn) {
	defer h.closeSub(c)
	for {
		if _, _, err := c.NextReader(); err != nil {
			return
		}
	}
}

func (h *WSHub) closeSub(c *websocket.Conn) {
	_ = c.Close()
	h.mu.Lock()
	delete(h.subs, c)
	h.mu.Unlock()
	log.Printf("console subscriber disconnected (%d total)", h.count())
}

func (h *WSHub) count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
