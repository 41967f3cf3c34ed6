package api

import (
	"ai-chat-backend/pkg/httputil"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

type rateWindow struct {
	count   int
	resetAt time.Time
}

// LoginRateLimiter caps requests per client IP within a fixed window.
type LoginRateLimiter struct {
	max    int
	window time.Duration
	now    func() time.Time
	logger *zap.Logger

	mu      sync.Mutex
	windows *cache.Cache
}

func NewLoginRateLimiter(max int, window time.Duration, logger *zap.Logger) *LoginRateLimiter {
	return &LoginRateLimiter{
		max:     max,
		window:  window,
		now:     time.Now,
		logger:  logger.Named("rate_limiter"),
		windows: cache.New(window, 2*window),
	}
}

// Allow records one attempt for key. When the limit is exceeded it returns
// false and how long until the window resets.
func (l *LoginRateLimiter) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if v, found := l.windows.Get(key); found {
		w := v.(*rateWindow)
		if now.Before(w.resetAt) {
			if w.count >= l.max {
				return false, w.resetAt.Sub(now)
			}
			w.count++
			return true, 0
		}
	}

	l.windows.Set(key, &rateWindow{count: 1, resetAt: now.Add(l.window)}, l.window)
	return true, 0
}

// Middleware rejects requests over the limit with 429 and a Retry-After header.
func (l *LoginRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		ok, retryAfter := l.Allow(ip)
		if !ok {
			seconds := int(math.Ceil(retryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			l.logger.Warn("login rate limit exceeded", zap.String("ip", ip))
			w.Header().Set("Retry-After", strconv.Itoa(seconds))
			httputil.RespondError(w, http.StatusTooManyRequests, "Too many login attempts, try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
