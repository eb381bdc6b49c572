package middleware

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	lru "github.com/hashicorp/golang-lru"

	"github.com/mektycoon/mekgold/backend/utils"
)

const rateLimiterKeys = 10000

// RateLimiter is a sliding-window limiter over a bounded set of keys. The
// least recently seen keys are evicted once the set is full.
type RateLimiter struct {
	mu     sync.Mutex
	hits   *lru.Cache
	window time.Duration
	limit  int
	now    func() time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	cache, err := lru.New(rateLimiterKeys)
	if err != nil {
		panic(err)
	}
	return &RateLimiter{hits: cache, window: window, limit: limit, now: time.Now}
}

// Allow records a request for key and reports whether it is within the limit.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cutoff := now.Add(-rl.window)

	var recent []time.Time
	if v, ok := rl.hits.Get(key); ok {
		for _, t := range v.([]time.Time) {
			if t.After(cutoff) {
				recent = append(recent, t)
			}
		}
	}

	if len(recent) >= rl.limit {
		rl.hits.Add(key, recent)
		return false
	}
	rl.hits.Add(key, append(recent, now))
	return true
}

// RateLimit limits requests per key; keyFn defaults to the client IP.
func RateLimit(limit int, window time.Duration, keyFn func(c *fiber.Ctx) string) fiber.Handler {
	limiter := NewRateLimiter(limit, window)
	if keyFn == nil {
		keyFn = utils.GetIPAddress
	}

	return func(c *fiber.Ctx) error {
		key := keyFn(c)
		if !limiter.Allow(key) {
			slog.Warn("Rate limit exceeded",
				slog.String("type", "http"),
				slog.String("key", key),
				slog.String("path", c.Path()),
				slog.Int("limit", limit),
				slog.Duration("window", window))
			return utils.SendTooManyRequests(c, "Too many requests. Please try again later.")
		}
		return c.Next()
	}
}

// CollectRateLimit bounds collect calls per account.
func CollectRateLimit() fiber.Handler {
	return RateLimit(30, time.Minute, func(c *fiber.Ctx) string {
		return "collect:" + c.Params("id")
	})
}

func APIRateLimit() fiber.Handler {
	return RateLimit(300, time.Minute, nil)
}
