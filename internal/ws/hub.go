package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event types pushed to scene watchers.
const (
	EventModelAdded   = "model_added"
	EventModelRemoved = "model_removed"
	EventModelUpdated = "model_updated"
	EventSceneDeleted = "scene_deleted"
)

// Event is a scene-mutation notification. The feed is one-way: watchers get
// told the scene changed and re-fetch the snapshot themselves.
type Event struct {
	SceneID    string    `json:"scene_id"`
	Type       string    `json:"type"`
	InstanceID string    `json:"instance_id,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Client is one websocket watcher attached to a scene.
type Client struct {
	SceneID string
	Send    chan []byte
	Conn    *websocket.Conn
}

// Hub fans scene events out to the watchers of each scene.
type Hub struct {
	clients    map[string]map[*Client]bool // sceneID -> clients
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan Event
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan Event, 16),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if h.clients[client.SceneID] == nil {
				h.clients[client.SceneID] = make(map[*Client]bool)
			}
			h.clients[client.SceneID][client] = true
			h.mu.Unlock()
		case client := <-h.Unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.SceneID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.Send)
				}
			}
			h.mu.Unlock()
		case ev := <-h.Broadcast:
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			h.mu.Lock()
			for client := range h.clients[ev.SceneID] {
				select {
				case client.Send <- data:
				default:
					close(client.Send)
					delete(h.clients[ev.SceneID], client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Notify queues an event without blocking the caller; events are dropped if
// the broadcast queue is full.
func (h *Hub) Notify(ev Event) {
	if ev.UpdatedAt.IsZero() {
		ev.UpdatedAt = time.Now().UTC()
	}
	select {
	case h.Broadcast <- ev:
	default:
	}
}

// ActiveWatchers returns how many clients are watching a scene.
func (h *Hub) ActiveWatchers(sceneID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sceneID])
}
