package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"go-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// keyedLimiter holds a token bucket per key. Buckets idle for longer than
// limiterIdleTTL are swept on a later access.
type keyedLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	r         rate.Limit
	b         int
	lastSweep time.Time
}

func newKeyedLimiter(r rate.Limit, b int) *keyedLimiter {
	return &keyedLimiter{buckets: make(map[string]*bucket), r: r, b: b, lastSweep: time.Now()}
}

func (l *keyedLimiter) reserve(key string) (bool, time.Duration) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > limiterIdleTTL {
		for k, bk := range l.buckets {
			if now.Sub(bk.lastSeen) > limiterIdleTTL {
				delete(l.buckets, k)
			}
		}
		l.lastSweep = now
	}

	bk, ok := l.buckets[key]
	if !ok {
		bk = &bucket{limiter: rate.NewLimiter(l.r, l.b)}
		l.buckets[key] = bk
	}
	bk.lastSeen = now

	res := bk.limiter.ReserveN(now, 1)
	if !res.OK() {
		return false, 0
	}
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return false, delay
	}
	return true, 0
}

func limitBy(r rate.Limit, b int, message string, key func(*gin.Context) string) gin.HandlerFunc {
	limiter := newKeyedLimiter(r, b)
	return func(c *gin.Context) {
		k := key(c)
		if k == "" {
			c.Next()
			return
		}
		if ok, wait := limiter.reserve(k); !ok {
			if wait > 0 {
				c.Header("Retry-After", strconv.Itoa(int(wait.Seconds())+1))
			}
			response.Error(c, http.StatusTooManyRequests, "TOO_MANY_REQUESTS", message, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RateLimitByIP throttles unauthenticated endpoints such as login.
// r is requests per second, b the burst.
func RateLimitByIP(r rate.Limit, b int) gin.HandlerFunc {
	return limitBy(r, b, "Too many requests from this IP", func(c *gin.Context) string {
		return c.ClientIP()
	})
}

// RateLimitByUser throttles per authenticated user. Requests without a user id
// pass through, so it must sit behind AuthMiddleware.
func RateLimitByUser(r rate.Limit, b int) gin.HandlerFunc {
	return limitBy(r, b, "Too many requests from this user", func(c *gin.Context) string {
		return c.GetString(ContextUserID)
	})
}
