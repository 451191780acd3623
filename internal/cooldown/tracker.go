// Package cooldown tracks per (command, user) cooldown windows. The tracker
// is an injected service object so tests can run against isolated instances.
package cooldown

import (
	"sync"
	"time"
)

// Tracker maps (command, user) to the timestamp when the pair becomes
// eligible again. Entries grow with usage; Sweep compacts expired ones.
type Tracker struct {
	mu    sync.Mutex
	until map[string]time.Time
	now   func() time.Time // replaceable in tests
}

// NewTracker returns an empty tracker on the wall clock.
func NewTracker() *Tracker {
	return &Tracker{
		until: make(map[string]time.Time),
		now:   time.Now,
	}
}

func key(command, userID string) string {
	return command + ":" + userID
}

// Check reports whether the pair may run now. A non-positive duration always
// passes. On pass, the expiry is set to now + d and remaining is 0. On fail,
// remaining holds the whole seconds left, rounded up.
func (t *Tracker) Check(command, userID string, d time.Duration) (remainingSeconds int, ok bool) {
	if d <= 0 {
		return 0, true
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	k := key(command, userID)
	if expiry, exists := t.until[k]; exists && now.Before(expiry) {
		rem := expiry.Sub(now)
		secs := int((rem + time.Second - 1) / time.Second)
		return secs, false
	}

	t.until[k] = now.Add(d)
	return 0, true
}

// Remaining peeks at the seconds left for a pair without mutating state.
func (t *Tracker) Remaining(command, userID string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	expiry, exists := t.until[key(command, userID)]
	if !exists {
		return 0
	}
	rem := expiry.Sub(t.now())
	if rem <= 0 {
		return 0
	}
	return int((rem + time.Second - 1) / time.Second)
}

// Clear removes the entry for a pair.
func (t *Tracker) Clear(command, userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.until, key(command, userID))
}

// Sweep removes all expired entries and returns how many were dropped.
func (t *Tracker) Sweep() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	dropped := 0
	for k, expiry := range t.until {
		if !now.Before(expiry) {
			delete(t.until, k)
			dropped++
		}
	}
	return dropped
}

// Len returns the number of tracked entries, expired or not.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.until)
}
