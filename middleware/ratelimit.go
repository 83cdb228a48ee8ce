package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/blogem/lanauthgate/userctx"
)

// idleLimiterTTL is how long an unused per-IP limiter is kept
const idleLimiterTTL = 5 * time.Minute

type bucket struct {
	lim *rate.Limiter
	ts  time.Time
}

// RateLimiter is a token bucket per client IP. It reads the IP stored by ClientIP.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   rate.Limit
	burst   int
}

// NewLoginRateLimiter allows perMinute attempts per minute and IP, with the
// whole minute's allowance available as a burst
func NewLoginRateLimiter(perMinute int) *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*bucket),
		limit:   rate.Limit(float64(perMinute) / 60),
		burst:   perMinute,
	}
}

// Allow reports whether ip may proceed now
func (l *RateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[ip]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[ip] = b
	}
	b.ts = time.Now()
	return b.lim.Allow()
}

// Middleware rejects requests over the limit with 429
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(userctx.GetClientIP(r.Context())) {
			writeError(w, http.StatusTooManyRequests, "rate_limited", "Too many login attempts, try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Run drops idle limiters every interval until ctx is done
func (l *RateLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.prune(time.Now())
		}
	}
}

func (l *RateLimiter) prune(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, b := range l.buckets {
		if now.Sub(b.ts) > idleLimiterTTL {
			delete(l.buckets, ip)
		}
	}
}
