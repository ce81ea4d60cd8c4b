package httpx

import (
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/aussiebroadwan/ideadesk/pkg/slogx"
)

// RateLimitConfig allows RequestsPerWindow requests per key every Window,
// with up to Burst at once.
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	Burst             int
}

// LoginLimit guards the console sign-in endpoint against password guessing.
var LoginLimit = RateLimitConfig{
	RequestsPerWindow: 5,
	Window:            time.Minute,
	Burst:             5,
}

// ParseRateLimitFromEnv overrides def from RATELIMIT_<prefix>_REQUESTS,
// RATELIMIT_<prefix>_WINDOW_SEC and RATELIMIT_<prefix>_BURST. Values that
// are not positive integers are ignored.
func ParseRateLimitFromEnv(prefix string, def RateLimitConfig) RateLimitConfig {
	cfg := def
	if n, ok := positiveEnv("RATELIMIT_" + prefix + "_REQUESTS"); ok {
		cfg.RequestsPerWindow = n
	}
	if n, ok := positiveEnv("RATELIMIT_" + prefix + "_WINDOW_SEC"); ok {
		cfg.Window = time.Duration(n) * time.Second
	}
	if n, ok := positiveEnv("RATELIMIT_" + prefix + "_BURST"); ok {
		cfg.Burst = n
	}
	return cfg
}

func positiveEnv(key string) (int, bool) {
	n, err := strconv.Atoi(os.Getenv(key))
	return n, err == nil && n > 0
}

// KeyExtractor groups requests for rate limiting. An empty key is not limited.
type KeyExtractor func(*http.Request) string

// IPKeyExtractor keys by client address, preferring the first
// X-Forwarded-For hop and then X-Real-IP.
func IPKeyExtractor(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// keyedLimiter holds one token bucket per key. Buckets idle for longer than
// a window are swept on the next allow call after the sweep interval.
type keyedLimiter struct {
	cfg   RateLimitConfig
	limit rate.Limit

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

func newKeyedLimiter(cfg RateLimitConfig) *keyedLimiter {
	return &keyedLimiter{
		cfg:       cfg,
		limit:     rate.Limit(float64(cfg.RequestsPerWindow) / cfg.Window.Seconds()),
		buckets:   make(map[string]*bucket),
		lastSweep: time.Now(),
	}
}

// allow reports whether a request for key may proceed and, if not, how long
// until it could.
func (k *keyedLimiter) allow(key string, now time.Time) (bool, time.Duration) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if now.Sub(k.lastSweep) > k.cfg.Window {
		for idle, b := range k.buckets {
			if now.Sub(b.seen) > k.cfg.Window {
				delete(k.buckets, idle)
			}
		}
		k.lastSweep = now
	}

	b, ok := k.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(k.limit, k.cfg.Burst)}
		k.buckets[key] = b
	}
	b.seen = now

	if b.lim.AllowN(now, 1) {
		return true, 0
	}
	r := b.lim.ReserveN(now, 1)
	wait := r.DelayFrom(now)
	r.CancelAt(now)
	return false, wait
}

// RateLimitMiddleware answers 429 with Retry-After once a key exceeds cfg.
func RateLimitMiddleware(cfg RateLimitConfig, keyOf KeyExtractor) Middleware {
	kl := newKeyedLimiter(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyOf(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			ok, wait := kl.allow(key, time.Now())
			if ok {
				next.ServeHTTP(w, r)
				return
			}

			retryAfter := max(int(wait.Round(time.Second)/time.Second), 1)
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.RequestsPerWindow))
			w.Header().Set("X-RateLimit-Window", cfg.Window.String())

			slogx.FromContext(r.Context()).Warn("rate limit exceeded",
				"key", key,
				"path", r.URL.Path,
				"retry_after", retryAfter,
			)
			WriteError(w, http.StatusTooManyRequests,
				"rate_limit_exceeded", "Too many attempts. Please wait a moment and try again.")
		})
	}
}

// RateLimitByIP limits by client address.
func RateLimitByIP(cfg RateLimitConfig) Middleware {
	return RateLimitMiddleware(cfg, IPKeyExtractor)
}
