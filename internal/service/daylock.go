package service

import "sync"

// KeyedLocks hands out one mutex per key. Services that write to a date
// share a single instance so the closed-day check and the write it guards
// cannot interleave with a concurrent close.
type KeyedLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyedLocks() *KeyedLocks {
	return &KeyedLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns its release func.
func (k *KeyedLocks) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}

func dateKey(date string) string { return "date:" + date }
func employeeKey(employeeID string) string { return "employee:" + employeeID }
