// Package broker is the process-wide live-notification bus. It is plain
// in-memory fan-out: subscribers connected at publish time receive the event
// exactly once, nothing is replayed for late joiners. Durable state lives in
// the notification store; this bus only feeds open push connections.
package broker

import (
	"sync"

	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
)

// Filter selects which published events a subscription receives.
// Exactly one of ScholarID / Role is meaningful: scholar subscriptions set
// ScholarID, admin subscriptions set Role.
type Filter struct {
	ScholarID string
	Role      domain.Role
}

func (f Filter) matches(ev domain.NotificationEvent) bool {
	if f.ScholarID != "" {
		return ev.Scholar != nil && ev.Scholar.ReceiverID == f.ScholarID
	}
	return ev.Admin != nil && ev.Admin.VisibleTo(f.Role)
}

type subscriber struct {
	filter Filter
	ch     chan domain.NotificationEvent
}

// Broker fans one published event out to every live subscription whose
// filter matches. Publish never blocks: a subscriber whose buffer is full
// misses the event (delivery is at-most-once; reconnecting clients recover
// through the pull queries).
type Broker struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]*subscriber
	buffer int
	closed bool
}

// New creates a broker whose subscription channels buffer up to size events.
func New(size int) *Broker {
	if size <= 0 {
		size = 16
	}
	return &Broker{
		subs:   make(map[int]*subscriber),
		buffer: size,
	}
}

// Subscribe registers a live subscription and returns its event channel plus
// a cancel func. The channel is closed by cancel or by Close.
func (b *Broker) Subscribe(f Filter) (<-chan domain.NotificationEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		ch := make(chan domain.NotificationEvent)
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	sub := &subscriber{filter: f, ch: make(chan domain.NotificationEvent, b.buffer)}
	b.subs[id] = sub

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if s, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(s.ch)
		}
	}
	return sub.ch, cancel
}

// Publish delivers ev to every matching live subscriber. It returns the
// number of subscribers that actually received the event.
func (b *Broker) Publish(ev domain.NotificationEvent) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0
	}

	delivered := 0
	for _, sub := range b.subs {
		if !sub.filter.matches(ev) {
			continue
		}
		select {
		case sub.ch <- ev:
			delivered++
		default:
			// Subscriber buffer full; drop rather than block the publisher.
		}
	}
	return delivered
}

// Close shuts the bus down, closing every subscription channel.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, sub := range b.subs {
		delete(b.subs, id)
		close(sub.ch)
	}
}
