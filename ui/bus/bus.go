// Package bus passes game updates from the lobby to the screens that show them.
package bus

import (
	"sync"

	"github.com/jacobpatterson1549/codenames/game"
)

type (
	// Bus delivers published games to subscribers.
	// Handlers are called synchronously, in the order they subscribed.
	Bus struct {
		mu       sync.RWMutex
		nextID   int
		handlers map[Topic][]subscription
	}

	// Topic names a kind of event.
	Topic string

	// Handler is called with the published game.
	Handler func(g game.Game)

	subscription struct {
		id int
		h  Handler
	}
)

// GameUpdated is published by the lobby each time a game frame is merged.
const GameUpdated Topic = "GameUpdated"

// New creates an empty bus.
func New() *Bus {
	b := Bus{
		handlers: make(map[Topic][]subscription),
	}
	return &b
}

// Subscribe registers the handler for the topic.  The returned function removes the subscription.
func (b *Bus) Subscribe(t Topic, h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.handlers[t] = append(b.handlers[t], subscription{id: id, h: h})
	return func() {
		b.unsubscribe(t, id)
	}
}

// unsubscribe removes the subscription with the id.
func (b *Bus) unsubscribe(t Topic, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.handlers[t]
	for i, s := range subs {
		if s.id == id {
			b.handlers[t] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish calls every handler of the topic with a copy of the game.
func (b *Bus) Publish(t Topic, g game.Game) {
	b.mu.RLock()
	subs := append([]subscription{}, b.handlers[t]...)
	b.mu.RUnlock()
	for _, s := range subs {
		s.h(g.Copy())
	}
}
