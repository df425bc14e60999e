package server

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// Event is one message pushed to a room's subscribers.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Subscriber is a live push channel for one client connection to a room.
type Subscriber struct {
	id     string
	events chan Event
}

func (sub *Subscriber) ID() string {
	return sub.id
}

// Events is drained by the connection's writer; the channel closes when the
// subscriber is removed from the hub.
func (sub *Subscriber) Events() <-chan Event {
	return sub.events
}

// subscriberHub owns the per-room subscriber sets. Delivery never blocks:
// a subscriber whose buffer is full is evicted rather than stalling the
// broadcaster. Sends and removals both happen under the hub lock so an
// evicted channel is never closed mid-send.
type subscriberHub struct {
	mu     sync.Mutex
	buffer int
	rooms  map[string]map[*Subscriber]struct{}
}

func newSubscriberHub(buffer int) *subscriberHub {
	if buffer <= 0 {
		buffer = 16
	}
	return &subscriberHub{
		buffer: buffer,
		rooms:  make(map[string]map[*Subscriber]struct{}),
	}
}

func (h *subscriberHub) Subscribe(roomID string) *Subscriber {
	sub := &Subscriber{
		id:     uuid.NewString(),
		events: make(chan Event, h.buffer),
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.rooms[roomID]
	if group == nil {
		group = make(map[*Subscriber]struct{})
		h.rooms[roomID] = group
	}
	group[sub] = struct{}{}
	return sub
}

func (h *subscriberHub) Unsubscribe(roomID string, sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(roomID, sub)
}

func (h *subscriberHub) removeLocked(roomID string, sub *Subscriber) {
	group := h.rooms[roomID]
	if group == nil {
		return
	}
	if _, ok := group[sub]; !ok {
		return
	}
	delete(group, sub)
	close(sub.events)
	if len(group) == 0 {
		delete(h.rooms, roomID)
	}
}

// Broadcast delivers the event to every subscriber of the room. Subscribers
// that cannot accept it are dropped.
func (h *subscriberHub) Broadcast(roomID string, event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.rooms[roomID]
	if group == nil {
		return
	}
	var evicted []*Subscriber
	for sub := range group {
		select {
		case sub.events <- event:
		default:
			evicted = append(evicted, sub)
		}
	}
	for _, sub := range evicted {
		log.Printf("subscriber evicted room_id=%s subscriber_id=%s", roomID, sub.id)
		h.removeLocked(roomID, sub)
	}
}

// Send delivers the event to a single subscriber, dropping it on a full
// buffer without eviction.
func (h *subscriberHub) Send(roomID string, sub *Subscriber, event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.rooms[roomID]
	if group == nil {
		return
	}
	if _, ok := group[sub]; !ok {
		return
	}
	select {
	case sub.events <- event:
	default:
	}
}

func (h *subscriberHub) SubscriberCount(roomID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[roomID])
}

// CloseRoom removes every subscriber of one room, closing their channels.
func (h *subscriberHub) CloseRoom(roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.rooms[roomID]
	for sub := range group {
		delete(group, sub)
		close(sub.events)
	}
	delete(h.rooms, roomID)
}

// Shutdown removes every subscriber; their event channels close, ending the
// connection writers.
func (h *subscriberHub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for roomID, group := range h.rooms {
		for sub := range group {
			delete(group, sub)
			close(sub.events)
		}
		delete(h.rooms, roomID)
	}
}
