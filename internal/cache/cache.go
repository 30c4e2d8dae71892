package cache

import (
	"sync"
	"time"

	"github.com/teetime/campusride/internal/domain/ride"
)

// PendingRides is a small in-process TTL cache for the pending-rides listing,
// the one read-heavy query drivers poll. Any ride mutation invalidates it.
type PendingRides struct {
	mu  sync.RWMutex
	ttl time.Duration

	val []ride.Ride
	exp time.Time
	ok  bool
}

func NewPendingRides(ttl time.Duration) *PendingRides {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}

	return &PendingRides{ttl: ttl}
}

func (c *PendingRides) Get() ([]ride.Ride, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.ok || time.Now().After(c.exp) {
		return nil, false
	}

	out := make([]ride.Ride, len(c.val))
	copy(out, c.val)

	return out, true
}

func (c *PendingRides) Set(rides []ride.Ride) {
	val := make([]ride.Ride, len(rides))
	copy(val, rides)

	c.mu.Lock()
	c.val = val
	c.exp = time.Now().Add(c.ttl)
	c.ok = true
	c.mu.Unlock()
}

func (c *PendingRides) Invalidate() {
	c.mu.Lock()
	c.val = nil
	c.ok = false
	c.mu.Unlock()
}
