package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/bismillahdumoro-svg/zyracafe/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Fixed-window per-IP request counting. One limiter instance per guarded
// surface; all instances share a purge loop that evicts IPs whose window
// has lapsed, so the maps cannot grow without bound.

type visitor struct {
	mu        sync.Mutex
	count     int
	windowEnd time.Time
}

type ipLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
	message  string
}

var (
	limitersMu sync.Mutex
	limiters   []*ipLimiter
)

func newIPLimiter(limit int, window time.Duration, message string) *ipLimiter {
	l := &ipLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
		message:  message,
	}
	limitersMu.Lock()
	limiters = append(limiters, l)
	limitersMu.Unlock()
	return l
}

func (l *ipLimiter) handle(c *gin.Context) {
	ip := c.ClientIP()

	l.mu.Lock()
	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{}
		l.visitors[ip] = v
	}
	l.mu.Unlock()

	v.mu.Lock()
	defer v.mu.Unlock()

	now := time.Now()
	if now.After(v.windowEnd) {
		v.count = 0
		v.windowEnd = now.Add(l.window)
	}

	v.count++
	if v.count > l.limit {
		c.Header("Retry-After", v.windowEnd.Format(time.RFC1123))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.message))
		return
	}
	c.Next()
}

func (l *ipLimiter) purge(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	purged := 0
	for ip, v := range l.visitors {
		v.mu.Lock()
		if now.After(v.windowEnd) {
			delete(l.visitors, ip)
			purged++
		}
		v.mu.Unlock()
	}
	return purged
}

var loginLimiter = newIPLimiter(20, time.Minute,
	"Terlalu banyak percobaan login. Coba lagi dalam 1 menit.")

// LoginRateLimiter guards the login endpoint against credential stuffing:
// 20 attempts per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return loginLimiter.handle
}

// RateLimiter is the general API limiter. Terminal agents replay queued
// mutations in a burst after reconnecting, so callers must keep the limit
// well above a realistic replay batch.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	l := newIPLimiter(limit, window, "Terlalu banyak permintaan. Coba lagi sebentar lagi.")
	return l.handle
}

const purgeInterval = 5 * time.Minute

func init() {
	go func() {
		ticker := time.NewTicker(purgeInterval)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			total := 0
			limitersMu.Lock()
			for _, l := range limiters {
				total += l.purge(now)
			}
			limitersMu.Unlock()
			if total > 0 {
				log.Debug().Int("purged", total).Msg("rate limiter entries purged")
			}
		}
	}()
}
