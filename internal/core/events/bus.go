// Package events carries notifications emitted by successful mutations.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType identifies what happened.
type EventType string

const (
	ValuationCreated EventType = "valuation.created"
	ValuationDeleted EventType = "valuation.deleted"
	HistorySaved     EventType = "history.saved"
)

// AllTypes lists every event type, for subscribers that want everything.
var AllTypes = []EventType{ValuationCreated, ValuationDeleted, HistorySaved}

// Event is a single notification. UserID scopes it to the owner of the valuation.
type Event struct {
	ID          string    `json:"id"`
	Type        EventType `json:"type"`
	UserID      int64     `json:"userId"`
	ValuationID int64     `json:"valuationId"`
	Name        string    `json:"name,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// New returns an event stamped with a fresh id and the current time.
func New(t EventType, userID, valuationID int64) Event {
	return Event{
		ID:          uuid.NewString(),
		Type:        t,
		UserID:      userID,
		ValuationID: valuationID,
		Timestamp:   time.Now().UTC(),
	}
}

// Handler receives an event. Handlers run synchronously on the publishing goroutine and must not block.
type Handler func(Event)

// Publisher is the side of the bus used by mutations.
type Publisher interface {
	Publish(Event)
}

type subscription struct {
	id      uint64
	handler Handler
}

// Bus is an in-process fan-out of events to subscribers of each type.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[EventType][]subscription
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[EventType][]subscription)}
}

// Subscribe registers h for the given types and returns a function that removes it.
func (b *Bus) Subscribe(h Handler, types ...EventType) (unsubscribe func()) {
	if len(types) == 0 {
		types = AllTypes
	}

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	for _, t := range types {
		b.subs[t] = append(b.subs[t], subscription{id: id, handler: h})
	}
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id, types) })
	}
}

func (b *Bus) remove(id uint64, types []EventType) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, t := range types {
		subs := b.subs[t]
		kept := subs[:0]
		for _, s := range subs {
			if s.id != id {
				kept = append(kept, s)
			}
		}
		b.subs[t] = kept
	}
}

// Publish delivers e to every handler subscribed to its type, in subscription order.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.subs[e.Type]))
	for i, s := range b.subs[e.Type] {
		handlers[i] = s.handler
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(e)
	}
}

// Channel subscribes a buffered channel filtered by user. Events are dropped when the buffer is full;
// dropped reports how many so far. Call cancel to unsubscribe; the channel is never closed.
func (b *Bus) Channel(userID int64, buffer int, types ...EventType) (ch <-chan Event, dropped func() int, cancel func()) {
	c := make(chan Event, buffer)
	var mu sync.Mutex
	drops := 0
	cancel = b.Subscribe(func(e Event) {
		if e.UserID != userID {
			return
		}
		select {
		case c <- e:
		default:
			mu.Lock()
			drops++
			mu.Unlock()
		}
	}, types...)
	dropped = func() int {
		mu.Lock()
		defer mu.Unlock()
		return drops
	}
	return c, dropped, cancel
}
