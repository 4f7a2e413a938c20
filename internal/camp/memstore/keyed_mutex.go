package memstore

import "sync"

// keyedMutex hands out one mutex per key and drops it when nobody holds or waits for it.
type keyedMutex[K comparable] struct {
	mu    sync.Mutex
	locks map[K]*refLock
}

type refLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex[K comparable]() *keyedMutex[K] {
	return &keyedMutex[K]{
		locks: make(map[K]*refLock),
	}
}

// Lock blocks until key is free and returns the matching unlock func.
func (km *keyedMutex[K]) Lock(key K) func() {
	km.mu.Lock()
	l, ok := km.locks[key]
	if !ok {
		l = &refLock{}
		km.locks[key] = l
	}
	l.refs++
	km.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		km.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(km.locks, key)
		}
		km.mu.Unlock()
	}
}

func (km *keyedMutex[K]) size() int {
	km.mu.Lock()
	defer km.mu.Unlock()
	return len(km.locks)
}
