package services

import "sync"

// keyedMutex serializes work per entity id: bookings use it keyed by room id
// so availability check-then-create is a critical section, payments use it
// keyed by booking id so the paid cascade runs at most once.
//
// Entries are never evicted; the map is bounded by the number of rooms and
// bookings touched by one process lifetime.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[uint]*sync.Mutex)}
}

func (k *keyedMutex) Lock(id uint) {
	k.mu.Lock()
	m, ok := k.locks[id]
	if !ok {
		m = &sync.Mutex{}
		k.locks[id] = m
	}
	k.mu.Unlock()
	m.Lock()
}

func (k *keyedMutex) Unlock(id uint) {
	k.mu.Lock()
	m := k.locks[id]
	k.mu.Unlock()
	m.Unlock()
}
