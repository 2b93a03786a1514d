// Package id hands out the monotonic request identifiers that correlate
// outgoing Buttplug messages with their responses.
package id

import "sync"

// lowerBound and upperBound bracket the id space; 0 is reserved for
// server-initiated messages and must never be allocated here.
const (
	lowerBound uint32 = 1
	upperBound uint32 = 1<<32 - 1
)

// Allocator generates unique, non-zero request ids, wrapping from
// upperBound back to lowerBound. It is safe for concurrent use by any
// number of callers serializing outgoing messages.
type Allocator struct {
	mu      sync.Mutex
	current uint32
	started bool
	inUse   map[uint32]struct{}
}

// NewAllocator returns an Allocator ready to hand out ids starting at 1.
func NewAllocator() *Allocator {
	return &Allocator{inUse: make(map[uint32]struct{})}
}

// Next returns the next unique id. The first call returns 1; each
// subsequent call returns the previous value plus one, wrapping back to 1
// after upperBound. Every id Next returns stays reserved until Release is
// called for it, and a still-reserved id is skipped so an in-flight request
// is never handed a colliding id.
func (a *Allocator) Next() uint32 {
	a.mu.Lock()
	defer a.mu.Unlock()

	for {
		if !a.started {
			a.current = lowerBound
			a.started = true
		} else if a.current == upperBound {
			a.current = lowerBound
		} else {
			a.current++
		}

		if _, reserved := a.inUse[a.current]; !reserved {
			a.inUse[a.current] = struct{}{}
			return a.current
		}
	}
}

// Release marks id as no longer in flight, allowing it to be reused once
// the allocator wraps back around to it.
func (a *Allocator) Release(v uint32) {
	a.mu.Lock()
	delete(a.inUse, v)
	a.mu.Unlock()
}
