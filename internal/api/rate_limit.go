package api

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/vytor/wordflash/internal/errors"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long a client's limiter is kept after its last
// request.
const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per client key. Limiters unused
// for limiterIdleTTL are dropped by a sweep that runs at most once per TTL.
type RateLimiter struct {
	mu        sync.Mutex
	limits    map[string]*clientLimiter
	every     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

func NewRateLimiter(every rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{
		limits: make(map[string]*clientLimiter),
		every:  every,
		burst:  burst,
		now:    time.Now,
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= limiterIdleTTL {
		rl.evictIdle(now)
	}
	if c, ok := rl.limits[key]; ok {
		c.lastSeen = now
		return c.limiter
	}
	limiter := rate.NewLimiter(rl.every, rl.burst)
	rl.limits[key] = &clientLimiter{limiter: limiter, lastSeen: now}
	return limiter
}

func (rl *RateLimiter) evictIdle(now time.Time) {
	for key, c := range rl.limits {
		if now.Sub(c.lastSeen) >= limiterIdleTTL {
			delete(rl.limits, key)
		}
	}
	rl.lastSweep = now
}

// Allow reports whether key may make a request now.
func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

// limit rejects clients that exceed rl with 429. A nil limiter lets every
// request through.
func limit(rl *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rl == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.Allow(clientKey(r)) {
				handleError(w, r, errors.NewRateLimitError())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
