// Package event provides a small buffer-scoped subscription bus. The blame
// viewer's cursor mirroring and teardown hooks depend on this abstraction
// rather than on any particular UI host.
package event

import "sort"

// Kind discriminates the events the bus carries.
type Kind int

const (
	// CursorMoved fires after a pane's cursor line changes. Line carries
	// the new zero-based line number.
	CursorMoved Kind = iota
	// BufferClosed fires once when a buffer is torn down.
	BufferClosed
)

// BufferID identifies the buffer an event is scoped to.
type BufferID int

// Event is one published occurrence.
type Event struct {
	Kind   Kind
	Buffer BufferID
	Line   int
}

// Handler receives published events. Handlers run synchronously on the
// caller's goroutine; the bus performs no locking of its own.
type Handler func(Event)

// Subscription identifies a registration so it can be removed later.
type Subscription int

type entry struct {
	kind   Kind
	buffer BufferID
	fn     Handler
	once   bool
}

// Bus routes events to handlers registered for a (kind, buffer) pair.
type Bus struct {
	next Subscription
	subs map[Subscription]*entry
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Subscription]*entry)}
}

// Subscribe registers fn for events of the given kind scoped to buffer.
func (b *Bus) Subscribe(kind Kind, buffer BufferID, fn Handler) Subscription {
	return b.add(kind, buffer, fn, false)
}

// SubscribeOnce registers fn to fire at most once, then be removed.
func (b *Bus) SubscribeOnce(kind Kind, buffer BufferID, fn Handler) Subscription {
	return b.add(kind, buffer, fn, true)
}

func (b *Bus) add(kind Kind, buffer BufferID, fn Handler, once bool) Subscription {
	b.next++
	id := b.next
	b.subs[id] = &entry{kind: kind, buffer: buffer, fn: fn, once: once}
	return id
}

// Unsubscribe removes a registration. Unknown ids are ignored.
func (b *Bus) Unsubscribe(id Subscription) {
	delete(b.subs, id)
}

// Publish delivers ev to every matching handler in registration order.
// One-shot handlers are removed before they run, so a handler that
// re-publishes cannot fire itself twice.
func (b *Bus) Publish(ev Event) {
	var ids []Subscription
	for id, e := range b.subs {
		if e.kind == ev.Kind && e.buffer == ev.Buffer {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		e, ok := b.subs[id]
		if !ok {
			// Removed by an earlier handler during this publish.
			continue
		}
		if e.once {
			delete(b.subs, id)
		}
		e.fn(ev)
	}
}
