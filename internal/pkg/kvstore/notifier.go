// internal/pkg/kvstore/notifier.go
package kvstore

import "sync"

// EventKind discriminates change notifications
type EventKind string

const (
	// EventChanged signals that a store's snapshot was rewritten
	EventChanged EventKind = "changed"
	// EventItemAdded signals an addition and carries the new total count
	EventItemAdded EventKind = "item_added"
)

// Event is a change notification published after a store mutation.
// Observers re-read the snapshot on receipt; the event itself only carries
// enough for badge-style consumers.
type Event struct {
	Domain     string    `json:"domain"`
	Kind       EventKind `json:"kind"`
	SessionID  string    `json:"session_id"`
	TotalCount int       `json:"total_count"`
}

// Notifier fans change events out to subscribers. Publishing happens
// synchronously after every mutation, so an observer that re-reads storage
// on notification sees a state at least as new as the triggering mutation.
type Notifier struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]subscription
}

type subscription struct {
	domain string
	fn     func(Event)
}

// NewNotifier creates an empty notifier hub
func NewNotifier() *Notifier {
	return &Notifier{subs: map[int]subscription{}}
}

// Subscribe registers a callback for events of the given domain.
// An empty domain subscribes to all domains. The returned function
// removes the subscription.
func (n *Notifier) Subscribe(domain string, fn func(Event)) func() {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.subs[id] = subscription{domain: domain, fn: fn}
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		delete(n.subs, id)
		n.mu.Unlock()
	}
}

// Publish delivers an event to all matching subscribers synchronously
func (n *Notifier) Publish(event Event) {
	n.mu.RLock()
	fns := make([]func(Event), 0, len(n.subs))
	for _, sub := range n.subs {
		if sub.domain == "" || sub.domain == event.Domain {
			fns = append(fns, sub.fn)
		}
	}
	n.mu.RUnlock()

	for _, fn := range fns {
		fn(event)
	}
}
