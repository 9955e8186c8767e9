package trust

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// SignatureCache tracks the last penalization time per (device, rule)
// signature so repeated matches inside the cooldown window contribute no
// additional penalty. In-memory, single process.
type SignatureCache struct {
	mu       sync.Mutex
	entries  map[string]time.Time
	cooldown time.Duration
	clock    clockwork.Clock
}

func NewSignatureCache(cooldown time.Duration, clock clockwork.Clock) *SignatureCache {
	return &SignatureCache{
		entries:  make(map[string]time.Time),
		cooldown: cooldown,
		clock:    clock,
	}
}

// Allow reports whether the signature is outside its cooldown window, and
// records the new penalization time when it is.
func (c *SignatureCache) Allow(deviceID, rule string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	key := deviceID + "|" + rule
	if last, ok := c.entries[key]; ok && now.Sub(last) < c.cooldown {
		return false
	}
	c.entries[key] = now
	c.gc(now)
	return true
}

// gc opportunistically drops signatures idle for 5x the cooldown.
// Caller holds the lock.
func (c *SignatureCache) gc(now time.Time) {
	horizon := 5 * c.cooldown
	for key, last := range c.entries {
		if now.Sub(last) > horizon {
			delete(c.entries, key)
		}
	}
}

// Len returns the number of tracked signatures.
func (c *SignatureCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
