// Package kmutex provides named critical sections. Multiple producers
// (watchers, the reconciler, message listeners) may race to record the same
// logical entity; serializing per logical id keeps the existence check and
// the insert of an idempotent add atomic within the process.
package kmutex

import (
	"sync"
)

type entry struct {
	mu   sync.Mutex
	refs int
}

// Kmutex is an arena of mutexes keyed by string. Locks for different keys
// are independent; a key's mutex only lives while somebody holds or awaits
// it, so the arena does not grow with the id space.
type Kmutex struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func New() *Kmutex {
	return &Kmutex{
		entries: map[string]*entry{},
	}
}

// Lock acquires the critical section for key, blocking while another
// goroutine holds it.
func (k *Kmutex) Lock(key string) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &entry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the critical section for key. Callers must pair every
// Lock with exactly one Unlock, normally via defer so that release happens
// on every exit path.
func (k *Kmutex) Unlock(key string) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		k.mu.Unlock()
		panic("kmutex: unlock of unlocked key " + key)
	}
	e.refs--
	if e.refs == 0 {
		delete(k.entries, key)
	}
	k.mu.Unlock()

	e.mu.Unlock()
}
