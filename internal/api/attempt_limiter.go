package api

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

const (
	loginAttemptBurst  = 5
	loginAttemptRefill = 12 * time.Second

	limiterIdleTTL      = 10 * time.Minute
	limiterPruneTrigger = 1024
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// attemptLimiter keeps one token bucket per client key.
type attemptLimiter struct {
	mu      sync.Mutex
	burst   int
	refill  time.Duration
	clients map[string]*clientLimiter
}

func newAttemptLimiter(burst int, refill time.Duration) *attemptLimiter {
	return &attemptLimiter{
		burst:   burst,
		refill:  refill,
		clients: make(map[string]*clientLimiter),
	}
}

// allow consumes one attempt for key at now. When the bucket is empty it
// returns false and the wait until the next attempt is available.
func (limiter *attemptLimiter) allow(key string, now time.Time) (bool, time.Duration) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	if len(limiter.clients) >= limiterPruneTrigger {
		limiter.pruneLocked(now)
	}

	client, ok := limiter.clients[key]
	if !ok {
		client = &clientLimiter{limiter: rate.NewLimiter(rate.Every(limiter.refill), limiter.burst)}
		limiter.clients[key] = client
	}
	client.lastSeen = now

	reservation := client.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return false, limiter.refill
	}
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return false, delay
	}
	return true, 0
}

func (limiter *attemptLimiter) reset(key string) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	delete(limiter.clients, key)
}

func (limiter *attemptLimiter) pruneLocked(now time.Time) {
	for key, client := range limiter.clients {
		if now.Sub(client.lastSeen) > limiterIdleTTL {
			delete(limiter.clients, key)
		}
	}
}

func requestLimiterKey(c *fiber.Ctx) string {
	key := strings.TrimSpace(c.IP())
	if key == "" {
		return "unknown"
	}
	return key
}
