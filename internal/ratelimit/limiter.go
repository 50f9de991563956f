// Package ratelimit throttles inbound events per chat. A chat gets one
// request per interval; anything inside the window is silently dropped by
// the dispatcher, with no user-visible error.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultInterval = time.Second
	DefaultTTL      = time.Hour
)

// Limiter keeps one token-bucket limiter per chat. Entries idle longer than
// ttl are evicted during periodic sweeps, so the map stays bounded in a
// long-running process.
type Limiter struct {
	interval time.Duration
	ttl      time.Duration

	mu        sync.Mutex
	entries   map[int64]*entry
	lastSweep time.Time
}

type entry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// New creates a Limiter with the given minimum inter-request spacing and
// idle-entry TTL. Non-positive values fall back to the defaults.
func New(interval, ttl time.Duration) *Limiter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Limiter{
		interval: interval,
		ttl:      ttl,
		entries:  make(map[int64]*entry),
	}
}

// Allow reports whether a request from chatID at the given moment may
// proceed. The check and the timestamp update are a single atomic step under
// the limiter's lock, so two near-simultaneous requests from the same chat
// cannot both pass.
func (l *Limiter) Allow(chatID int64, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	e, ok := l.entries[chatID]
	if !ok {
		e = &entry{lim: rate.NewLimiter(rate.Every(l.interval), 1)}
		l.entries[chatID] = e
	}
	e.lastSeen = now

	return e.lim.AllowN(now, 1)
}

// Len returns the number of tracked chats.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// sweep drops idle entries. Runs at most once per ttl; caller holds the lock.
func (l *Limiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.ttl {
		return
	}
	l.lastSweep = now

	for id, e := range l.entries {
		if now.Sub(e.lastSeen) > l.ttl {
			delete(l.entries, id)
		}
	}
}
