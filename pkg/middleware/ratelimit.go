package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"storefront/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimit applies a token bucket per client IP. Entries idle longer than
// entryTTL are dropped by a sweep that runs at most once per entryTTL.
func RateLimit(perMinute, burst int, logger *zap.Logger) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if burst < 1 {
		burst = 1
	}

	limiter := newIPRateLimiter(rate.Limit(float64(perMinute)/60), burst, 10*time.Minute)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !limiter.allow(ip) {
				logger.Warn("Rate limit exceeded",
					zap.String("ip", ip),
					zap.String("path", r.URL.Path),
				)
				w.Header().Set("Retry-After", "60")
				utils.ResponseTooManyRequests(w, "Too many requests, try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type ipRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*rate.Limiter
	lastSeen  map[string]time.Time
	limit     rate.Limit
	burst     int
	entryTTL  time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newIPRateLimiter(limit rate.Limit, burst int, entryTTL time.Duration) *ipRateLimiter {
	return &ipRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		lastSeen: make(map[string]time.Time),
		limit:    limit,
		burst:    burst,
		entryTTL: entryTTL,
		now:      time.Now,
	}
}

func (l *ipRateLimiter) getLimiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.entryTTL {
		l.sweep(now)
	}

	limiter, ok := l.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[ip] = limiter
	}
	l.lastSeen[ip] = now
	return limiter
}

// sweep drops idle entries. Caller holds l.mu.
func (l *ipRateLimiter) sweep(now time.Time) {
	for key, ts := range l.lastSeen {
		if now.Sub(ts) > l.entryTTL {
			delete(l.limiters, key)
			delete(l.lastSeen, key)
		}
	}
	l.lastSweep = now
}

func (l *ipRateLimiter) allow(ip string) bool {
	return l.getLimiter(ip).Allow()
}

// clientIP relies on chi's RealIP having already rewritten RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
