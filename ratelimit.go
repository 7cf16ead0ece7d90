package endpoint

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig configures the RateLimit middleware.
type RateLimitConfig struct {
	Rate            float64                      // requests per second
	Burst           int                          // max burst
	KeyFunc         func(r *http.Request) string // default: remote IP
	CleanupInterval time.Duration                // how often to prune idle limiters (default: 1m)
	MaxIdle         time.Duration                // remove limiters idle longer than this (default: 5m)
}

// RateLimit returns middleware that applies rate limiting per key and per
// operation. Limited requests get a 429 problem detail.
func RateLimit(cfg RateLimitConfig) Middleware {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = remoteHost
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = time.Minute
	}
	if cfg.MaxIdle <= 0 {
		cfg.MaxIdle = 5 * time.Minute
	}

	l := &limiters{cfg: cfg, m: make(map[string]*limiterEntry)}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := OperationID(r.Context()) + "|" + cfg.KeyFunc(r)
			if !l.allow(key, time.Now()) {
				retryAfter := 1.0
				if cfg.Rate > 0 {
					retryAfter = max(1, 1/cfg.Rate)
				}
				w.Header().Set("Retry-After", strconv.FormatFloat(retryAfter, 'f', 0, 64))
				writeErrorResponse(w, r, Error(http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests)))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type limiters struct {
	cfg         RateLimitConfig
	mu          sync.Mutex
	m           map[string]*limiterEntry
	lastCleanup time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func (l *limiters) allow(key string, now time.Time) bool {
	l.mu.Lock()
	if now.Sub(l.lastCleanup) >= l.cfg.CleanupInterval {
		for k, e := range l.m {
			if now.Sub(e.lastSeen) > l.cfg.MaxIdle {
				delete(l.m, k)
			}
		}
		l.lastCleanup = now
	}

	e, ok := l.m[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(l.cfg.Rate), l.cfg.Burst)}
		l.m[key] = e
	}
	e.lastSeen = now
	l.mu.Unlock()

	return e.limiter.AllowN(now, 1)
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
