package application

import (
	"sync"

	"github.com/google/uuid"
)

// propertyLocks serializes the availability check-then-write sequence per
// property. Two concurrent confirmations of overlapping pending bookings must
// not both observe "no conflict", so the re-check and the status write for one
// property execute under the same mutex.
type propertyLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newPropertyLocks() *propertyLocks {
	return &propertyLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// Lock acquires the mutex for the property and returns its unlock function.
func (p *propertyLocks) Lock(propertyID uuid.UUID) func() {
	p.mu.Lock()
	lock, ok := p.locks[propertyID]
	if !ok {
		lock = &sync.Mutex{}
		p.locks[propertyID] = lock
	}
	p.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
