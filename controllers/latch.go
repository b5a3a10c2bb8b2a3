package controllers

import (
	"sync"
	"time"
)

// latch guards interactive controls against rapid repeated activation.
// A key is held from acquisition until the cooldown elapses; repeat
// activations inside the window are rejected. Keys are scoped per
// control, not shared across controls.
type latch struct {
	mu       sync.Mutex
	cooldown time.Duration
	held     map[string]bool
}

func newLatch(cooldown time.Duration) *latch {
	return &latch{cooldown: cooldown, held: make(map[string]bool)}
}

func (l *latch) tryAcquire(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.held[key] {
		return false
	}
	l.held[key] = true
	time.AfterFunc(l.cooldown, func() { l.release(key) })
	return true
}

func (l *latch) release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, key)
}
