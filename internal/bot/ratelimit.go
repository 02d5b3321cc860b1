package bot

import (
	"sync"
	"time"
)

// defaultRateLimitInterval is the minimum spacing between updates accepted
// from a single user; faster updates are dropped.
const defaultRateLimitInterval = time.Second

// rateLimiter enforces a per-user minimum interval between processed
// updates. It is deliberately tiny: the bot is a single process and the
// map holds one timestamp per active user.
type rateLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	lastSeen map[int64]time.Time
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{
		interval: interval,
		lastSeen: make(map[int64]time.Time),
	}
}

// Allow reports whether the user's update may be processed at the given
// instant and records it if so.
func (l *rateLimiter) Allow(userID int64, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if last, ok := l.lastSeen[userID]; ok && now.Sub(last) < l.interval {
		return false
	}
	l.lastSeen[userID] = now
	return true
}
