package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestLoginRateLimiterAllow(t *testing.T) {
	current := time.Now()
	l := NewLoginRateLimiter(3, time.Minute)
	l.now = func() time.Time { return current }

	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if l.Allow("1.2.3.4") {
		t.Error("attempt over the limit should be denied")
	}

	// a different client has its own window
	if !l.Allow("5.6.7.8") {
		t.Error("other clients should be unaffected")
	}

	// the window expires and the counter resets
	current = current.Add(time.Minute)
	if !l.Allow("1.2.3.4") {
		t.Error("attempt after the window should be allowed again")
	}
}

func TestLoginRateLimiterMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l := NewLoginRateLimiter(2, time.Minute)

	router := gin.New()
	router.POST("/login", l.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "1.2.3.4:5678"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("first two attempts should pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("third attempt should be rejected with 429, got %d", codes[2])
	}
}
