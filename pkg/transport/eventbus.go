package transport

import (
	"errors"
	"fmt"
	"sync"
)

// ErrStopChain is returned by a Listener to stop remaining listeners on the
// same event from running for this Emit call, without treating the Emit
// itself as failed.
var ErrStopChain = errors.New("transport: stop callback chain")

// ErrUnknownEvent is returned by Emit, when called in strict mode, for a
// name that has never had a listener registered.
type ErrUnknownEvent struct {
	Name string
}

func (e *ErrUnknownEvent) Error() string {
	return fmt.Sprintf("transport: non-existent event %q", e.Name)
}

// Listener receives an event's payload. Returning ErrStopChain halts the
// remaining listeners for that Emit call without Emit reporting an error;
// any other non-nil error also halts the remaining listeners and is
// returned to the caller of Emit.
type Listener func(payload interface{}) error

// Subscription cancels a single listener registration.
type Subscription struct {
	bus  *EventBus
	name string
	id   uint64
}

// Cancel removes the listener this Subscription was returned for.
func (s Subscription) Cancel() {
	s.bus.off(s.name, s.id)
}

type registration struct {
	id uint64
	cb Listener
}

// EventBus is a minimal named pub/sub mechanism that fans out events to
// however many listeners the caller has registered, in registration order.
// WebSocketTransport uses it for its connect/disconnect/send/receive hooks.
type EventBus struct {
	mu        sync.Mutex
	listeners map[string][]registration
	known     map[string]struct{}
	nextID    uint64
}

// NewEventBus returns an empty EventBus.
func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[string][]registration),
		known:     make(map[string]struct{}),
	}
}

// On registers cb for name and returns a Subscription that can later cancel
// it.
func (b *EventBus) On(name string, cb Listener) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.known[name] = struct{}{}
	b.nextID++
	id := b.nextID
	b.listeners[name] = append(b.listeners[name], registration{id: id, cb: cb})
	return Subscription{bus: b, name: name, id: id}
}

func (b *EventBus) off(name string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.listeners[name]
	for i, r := range regs {
		if r.id == id {
			b.listeners[name] = append(regs[:i], regs[i+1:]...)
			return
		}
	}
}

// Emit invokes every listener registered for name, in registration order,
// stopping early if one returns ErrStopChain. When strict is true, Emit on
// a name that has never had a listener registered returns ErrUnknownEvent;
// when false it is a silent no-op. WebSocketTransport emits its lifecycle
// events non-strict, since subscribing to them is optional.
func (b *EventBus) Emit(name string, payload interface{}, strict bool) error {
	b.mu.Lock()
	if _, ok := b.known[name]; !ok {
		b.mu.Unlock()
		if strict {
			return &ErrUnknownEvent{Name: name}
		}
		return nil
	}
	regs := b.listeners[name]
	cbs := make([]Listener, len(regs))
	for i, r := range regs {
		cbs[i] = r.cb
	}
	b.mu.Unlock()

	for _, cb := range cbs {
		if err := cb(payload); err != nil {
			if errors.Is(err, ErrStopChain) {
				return nil
			}
			return err
		}
	}
	return nil
}
