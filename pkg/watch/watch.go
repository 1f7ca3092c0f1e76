// Package watch is an in-process change-notification hub. Each subscriber
// holds exactly one disposable handle; delivery is last-event-wins, so a
// slow reader never blocks publishers and never accumulates a backlog.
package watch

import (
	"sync"
	"time"
)

const (
	TopicBooks = "books"
	TopicLoans = "borrowers"
	TopicChats = "chats"
)

type Event struct {
	Entity string
	Op     string
	Uid    string
	At     time.Time
}

type Subscription struct {
	ch     chan Event
	cancel func()
	once   sync.Once
}

// C delivers at most the latest undelivered event.
func (s *Subscription) C() <-chan Event {
	return s.ch
}

func (s *Subscription) Cancel() {
	s.once.Do(s.cancel)
}

type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[int]*Subscription
	next int
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[int]*Subscription)}
}

func (h *Hub) Subscribe(topic string) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++

	sub := &Subscription{ch: make(chan Event, 1)}
	sub.cancel = func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs[topic], id)
	}

	if h.subs[topic] == nil {
		h.subs[topic] = make(map[int]*Subscription)
	}
	h.subs[topic][id] = sub
	return sub
}

func (h *Hub) Publish(topic string, ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subs[topic] {
		select {
		case sub.ch <- ev:
		default:
			// drop the stale event, keep the newest
			select {
			case <-sub.ch:
			default:
			}
			select {
			case sub.ch <- ev:
			default:
			}
		}
	}
}

func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[topic])
}
