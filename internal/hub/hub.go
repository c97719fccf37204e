package hub

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
)

// Conn is the part of a websocket connection the hub needs.
// *websocket.Conn satisfies it.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Subscriber wraps one connection. Writes are serialized per subscriber, so
// messages arrive in broadcast order on every connection.
type Subscriber struct {
	conn Conn
	mu   sync.Mutex
}

func NewSubscriber(conn Conn) *Subscriber {
	return &Subscriber{conn: conn}
}

func (s *Subscriber) send(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

func (s *Subscriber) Close() error {
	return s.conn.Close()
}

// Hub owns the live subscriber set and fans qualifying articles out to it.
// There is no backlog: a subscriber only sees broadcasts made while connected.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[*Subscriber]struct{}
}

func New() *Hub {
	return &Hub{subscribers: make(map[*Subscriber]struct{})}
}

func (h *Hub) Register(sub *Subscriber) {
	h.mu.Lock()
	h.subscribers[sub] = struct{}{}
	total := len(h.subscribers)
	h.mu.Unlock()

	slog.Info("subscriber connected", "total", total)
}

// Unregister removes the subscriber. Removing one that is already gone is a
// no-op.
func (h *Hub) Unregister(sub *Subscriber) {
	h.mu.Lock()
	_, present := h.subscribers[sub]
	delete(h.subscribers, sub)
	total := len(h.subscribers)
	h.mu.Unlock()

	if present {
		slog.Info("subscriber disconnected", "total", total)
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Broadcast serializes the message once and delivers it to every subscriber
// registered at call time. A failed send drops only that subscriber.
func (h *Hub) Broadcast(message any) {
	data, err := json.Marshal(message)
	if err != nil {
		slog.Error("broadcast marshal failed", "error", err)
		return
	}

	h.mu.RLock()
	snapshot := make([]*Subscriber, 0, len(h.subscribers))
	for sub := range h.subscribers {
		snapshot = append(snapshot, sub)
	}
	h.mu.RUnlock()

	for _, sub := range snapshot {
		if err := sub.send(data); err != nil {
			slog.Warn("subscriber send failed, dropping", "error", err)
			h.Unregister(sub)
			sub.Close()
		}
	}
}

// Shutdown closes every connection and empties the subscriber set.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	subs := make([]*Subscriber, 0, len(h.subscribers))
	for sub := range h.subscribers {
		subs = append(subs, sub)
	}
	h.subscribers = make(map[*Subscriber]struct{})
	h.mu.Unlock()

	for _, sub := range subs {
		sub.Close()
	}
}
