package httpx

import (
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig defines the rate limiting parameters for an endpoint
// class.
type RateLimitConfig struct {
	// RequestsPerWindow is the number of requests allowed in the window.
	RequestsPerWindow int
	// Window is the time window for rate limiting.
	Window time.Duration
	// Burst allows temporary bursts above the steady rate.
	Burst int
}

// Endpoint profiles. Credential endpoints get the strict profile to slow
// down online brute force; everything authenticated gets moderate.
// Overridable via RATELIMIT_{PROFILE}_{REQUESTS,WINDOW_SEC,BURST}.
var (
	StrictLimit = RateLimitConfig{
		RequestsPerWindow: 5,
		Window:            time.Minute,
		Burst:             5,
	}

	ModerateLimit = RateLimitConfig{
		RequestsPerWindow: 20,
		Window:            time.Minute,
		Burst:             20,
	}

	LenientLimit = RateLimitConfig{
		RequestsPerWindow: 100,
		Window:            time.Minute,
		Burst:             100,
	}
)

func init() {
	StrictLimit = parseRateLimitFromEnv("STRICT", StrictLimit)
	ModerateLimit = parseRateLimitFromEnv("MODERATE", ModerateLimit)
	LenientLimit = parseRateLimitFromEnv("LENIENT", LenientLimit)
}

func parseRateLimitFromEnv(prefix string, config RateLimitConfig) RateLimitConfig {
	if val := os.Getenv("RATELIMIT_" + prefix + "_REQUESTS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			config.RequestsPerWindow = n
		}
	}
	if val := os.Getenv("RATELIMIT_" + prefix + "_WINDOW_SEC"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			config.Window = time.Duration(n) * time.Second
		}
	}
	if val := os.Getenv("RATELIMIT_" + prefix + "_BURST"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			config.Burst = n
		}
	}
	return config
}

// KeyExtractor derives the bucket key for a request (IP address, user id,
// and so on).
type KeyExtractor func(*http.Request) string

// IPKeyExtractor extracts the client IP, honouring X-Forwarded-For and
// X-Real-IP for proxied requests.
func IPKeyExtractor(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first, _, _ := strings.Cut(xff, ","); first != "" {
			return strings.TrimSpace(first)
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// UserIDKeyExtractor keys by the authenticated user id, falling back to
// the client IP for unauthenticated requests.
func UserIDKeyExtractor(r *http.Request) string {
	if userID := UserIDFromCtx(r.Context()); userID != "" {
		return userID
	}
	return IPKeyExtractor(r)
}

const limiterIdleTTL = 10 * time.Minute

// rateLimiter manages one token bucket per key.
type rateLimiter struct {
	limiters sync.Map // map[string]*limiterEntry
	rate     rate.Limit
	burst    int

	mu          sync.Mutex
	lastCleanup time.Time
}

type limiterEntry struct {
	limiter *rate.Limiter

	// lastSeen holds Unix nanos; written by every request sharing the
	// bucket, so it must be atomic.
	lastSeen atomic.Int64
}

func (rl *rateLimiter) allow(key string) bool {
	now := time.Now()

	v, ok := rl.limiters.Load(key)
	if !ok {
		fresh := &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		fresh.lastSeen.Store(now.UnixNano())
		v, _ = rl.limiters.LoadOrStore(key, fresh)
	}
	entry := v.(*limiterEntry)
	entry.lastSeen.Store(now.UnixNano())

	rl.maybeCleanup(now)

	return entry.limiter.Allow()
}

// maybeCleanup drops buckets that have been idle for a while so ephemeral
// keys don't accumulate forever.
func (rl *rateLimiter) maybeCleanup(now time.Time) {
	rl.mu.Lock()
	if now.Sub(rl.lastCleanup) < limiterIdleTTL {
		rl.mu.Unlock()
		return
	}
	rl.lastCleanup = now
	rl.mu.Unlock()

	rl.limiters.Range(func(key, value any) bool {
		lastSeen := time.Unix(0, value.(*limiterEntry).lastSeen.Load())
		if now.Sub(lastSeen) > limiterIdleTTL {
			rl.limiters.Delete(key)
		}
		return true
	})
}

// RateLimit creates a rate limiting middleware with the given profile and
// key extractor. Over-limit requests get a 429 with a Retry-After hint.
func RateLimit(config RateLimitConfig, extract KeyExtractor) Middleware {
	rl := &rateLimiter{
		rate:        rate.Limit(float64(config.RequestsPerWindow) / config.Window.Seconds()),
		burst:       config.Burst,
		lastCleanup: time.Now(),
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.allow(extract(r)) {
				w.Header().Set("Retry-After", strconv.Itoa(int(config.Window.Seconds())))
				WriteError(w, http.StatusTooManyRequests, "rate_limited", "too many requests, slow down")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitByIP rate limits by client IP address. Use for anonymous
// endpoints like login and registration.
func RateLimitByIP(config RateLimitConfig) Middleware {
	return RateLimit(config, IPKeyExtractor)
}

// RateLimitByUser rate limits by authenticated user id. Compose after
// Authn.
func RateLimitByUser(config RateLimitConfig) Middleware {
	return RateLimit(config, UserIDKeyExtractor)
}
