package sse

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event represents an event sent over SSE
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`

	// recipient limits delivery to one user; empty means everyone
	recipient string
}

// Client is one open event stream
type Client struct {
	ID     string
	UserID string
	Events chan Event
}

// Hub fans events out to connected clients. Slow clients miss events rather
// than block the broadcaster.
type Hub struct {
	clients    map[string]*Client
	broadcast  chan Event
	register   chan *Client
	unregister chan string
	mu         sync.RWMutex
	shutdown   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
}

// NewHub creates a new SSE Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan Event, BroadcastBufferSize),
		register:   make(chan *Client, ClientChannelBuffer),
		unregister: make(chan string, ClientChannelBuffer),
		shutdown:   make(chan struct{}),
	}
}

// Start starts the hub's broadcast loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop ends the broadcast loop and closes every client stream. Safe to call twice.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.shutdown)
		h.wg.Wait()

		h.mu.Lock()
		for _, client := range h.clients {
			close(client.Events)
		}
		h.clients = make(map[string]*Client)
		h.mu.Unlock()
	})
}

func (h *Hub) run() {
	defer h.wg.Done()

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()

		case clientID := <-h.unregister:
			h.mu.Lock()
			if client, ok := h.clients[clientID]; ok {
				close(client.Events)
				delete(h.clients, clientID)
			}
			h.mu.Unlock()

		case evt := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients {
				if evt.recipient != "" && evt.recipient != client.UserID {
					continue
				}
				select {
				case client.Events <- evt:
				default:
				}
			}
			h.mu.RUnlock()

		case <-h.shutdown:
			return
		}
	}
}

// Register opens a stream for userID
func (h *Hub) Register(userID string) *Client {
	client := &Client{
		ID:     uuid.NewString(),
		UserID: userID,
		Events: make(chan Event, ClientEventBuffer),
	}
	select {
	case h.register <- client:
	case <-h.shutdown:
		close(client.Events)
	}
	return client
}

// Unregister closes the client's stream
func (h *Hub) Unregister(clientID string) {
	select {
	case h.unregister <- clientID:
	case <-h.shutdown:
	}
}

// Broadcast sends an event to every client
func (h *Hub) Broadcast(eventType string, payload interface{}) {
	h.enqueue(newEvent(eventType, payload, ""))
}

// SendTo sends an event only to the streams opened by userID
func (h *Hub) SendTo(userID, eventType string, payload interface{}) {
	h.enqueue(newEvent(eventType, payload, userID))
}

func (h *Hub) enqueue(evt Event) {
	select {
	case h.broadcast <- evt:
	default:
		slog.Warn(LogMsgEventDropped, "type", evt.Type)
	}
}

func newEvent(eventType string, payload interface{}, recipient string) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
		recipient: recipient,
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// FormatSSEMessage formats an SSE event for transmission
func FormatSSEMessage(evt Event) ([]byte, error) {
	data, err := json.Marshal(evt)
	if err != nil {
		return nil, err
	}

	// "id: <id>\nevent: <type>\ndata: <json>\n\n"
	msg := make([]byte, 0, len(data)+len(evt.ID)+len(evt.Type)+24)
	if evt.ID != "" {
		msg = append(msg, "id: "+evt.ID+"\n"...)
	}
	msg = append(msg, "event: "+evt.Type+"\n"...)
	msg = append(msg, "data: "...)
	msg = append(msg, data...)
	msg = append(msg, "\n\n"...)
	return msg, nil
}
