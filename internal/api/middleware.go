package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/wonny/grq-validation/pkg/logger"
	"github.com/wonny/grq-validation/pkg/redis"
)

// Limiter decides whether a client may make another request
type Limiter interface {
	Allow(ctx context.Context, client string) (allowed bool, remaining int, err error)
}

// RedisLimiter shares limits across API instances through Redis
type RedisLimiter struct {
	limiter *redis.RateLimiter
	limit   int
	window  time.Duration
}

// NewRedisLimiter creates a Redis-backed limiter
func NewRedisLimiter(limiter *redis.RateLimiter, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{limiter: limiter, limit: limit, window: window}
}

// Allow implements Limiter
func (l *RedisLimiter) Allow(ctx context.Context, client string) (bool, int, error) {
	return l.limiter.Allow(ctx, redis.APIRateLimit(client, l.limit, l.window))
}

// LocalLimiter per-client token buckets in process memory (Redis 비활성화 시)
// 유휴 클라이언트는 Prune 으로 제거 (limiter_cleanup 잡)
type LocalLimiter struct {
	mu      sync.Mutex
	clients map[string]*localClient
	every   rate.Limit
	burst   int
	now     func() time.Time
}

type localClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLocalLimiter allows limit requests per window per client
func NewLocalLimiter(limit int, window time.Duration) *LocalLimiter {
	return &LocalLimiter{
		clients: make(map[string]*localClient),
		every:   rate.Every(window / time.Duration(limit)),
		burst:   limit,
		now:     time.Now,
	}
}

// Allow implements Limiter
func (l *LocalLimiter) Allow(_ context.Context, client string) (bool, int, error) {
	l.mu.Lock()
	c, ok := l.clients[client]
	if !ok {
		c = &localClient{limiter: rate.NewLimiter(l.every, l.burst)}
		l.clients[client] = c
	}
	now := l.now()
	c.lastSeen = now
	l.mu.Unlock()

	if !c.limiter.AllowN(now, 1) {
		return false, 0, nil
	}
	return true, int(c.limiter.TokensAt(now)), nil
}

// Prune drops clients idle for longer than idle and returns how many were removed
func (l *LocalLimiter) Prune(idle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-idle)
	removed := 0
	for client, c := range l.clients {
		if c.lastSeen.Before(cutoff) {
			delete(l.clients, client)
			removed++
		}
	}
	return removed
}

// Clients returns the number of tracked clients
func (l *LocalLimiter) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// NewLimiter picks the Redis limiter when Redis is enabled
func NewLimiter(client *redis.Client, prefix string, limit int, window time.Duration) Limiter {
	if client != nil && client.Enabled() {
		return NewRedisLimiter(redis.NewRateLimiter(client, prefix), limit, window)
	}
	return NewLocalLimiter(limit, window)
}

// rateLimitMiddleware rejects clients over their limit with 429
// 리미터 오류 시 요청은 통과 (가용성 우선)
func rateLimitMiddleware(limiter Limiter, log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			allowed, remaining, err := limiter.Allow(r.Context(), clientIP(r))
			if err != nil {
				log.WithError(err).Warn("Rate limiter unavailable")
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			if !allowed {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error": "Rate limit exceeded",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start).String(),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
