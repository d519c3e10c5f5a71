package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"futstore-be/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Rate limit tiers. Login and checkout share the strict bucket.
const (
	limitStrict = rate.Limit(2)
	burstStrict = 5

	limitGeneral = rate.Limit(10)
	burstGeneral = 20
)

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	visitors = make(map[string]*visitor)
	mu       sync.Mutex
)

func init() {
	go cleanupVisitors()
}

func getVisitor(key string, r rate.Limit, b int) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	v, exists := visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		visitors[key] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// cleanupVisitors removes stale entries so the map does not grow
// without bound.
func cleanupVisitors() {
	for {
		time.Sleep(time.Minute)

		mu.Lock()
		for key, v := range visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(visitors, key)
			}
		}
		mu.Unlock()
	}
}

// RateLimitMiddleware applies the general tier to every request.
func RateLimitMiddleware() gin.HandlerFunc {
	return rateLimit(limitGeneral, burstGeneral, "general")
}

// StrictRateLimitMiddleware applies the strict tier; used on login and
// checkout, the two routes that hit external systems or credentials.
func StrictRateLimitMiddleware() gin.HandlerFunc {
	return rateLimit(limitStrict, burstStrict, "strict")
}

func rateLimit(limit rate.Limit, burst int, tier string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var identity string
		if userID, ok := utils.GetUserIDFromContext(c.Request.Context()); ok {
			identity = fmt.Sprintf("user:%d", userID)
		} else {
			identity = "ip:" + c.ClientIP()
		}

		// Same caller gets separate quotas per tier.
		key := identity + ":" + tier

		if !getVisitor(key, limit, burst).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}

		c.Next()
	}
}
