package auth

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// LoginRateLimiter caps login attempts per client IP over a fixed
// window. State is in-process only; a restart clears all counters.
type LoginRateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	windows map[string]*attemptWindow
	now     func() time.Time
}

type attemptWindow struct {
	start time.Time
	count int
}

// NewLoginRateLimiter creates a limiter allowing limit attempts per
// window per client.
func NewLoginRateLimiter(limit int, window time.Duration) *LoginRateLimiter {
	return &LoginRateLimiter{
		limit:   limit,
		window:  window,
		windows: make(map[string]*attemptWindow),
		now:     time.Now,
	}
}

// Allow records an attempt for the given key and reports whether it is
// within the limit.
func (l *LoginRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.window {
		l.windows[key] = &attemptWindow{start: now, count: 1}
		return true
	}

	w.count++
	return w.count <= l.limit
}

// Middleware returns a Gin middleware that rejects over-limit login
// attempts with 429 before the handler runs.
func (l *LoginRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many login attempts"})
			c.Abort()
			return
		}
		c.Next()
	}
}
