package middleware

import (
	"context"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"movie-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Token bucket kept in a Redis hash. Refill happens lazily on each call so the
// state stays consistent across replicas.
var tokenBucketScript = redis.NewScript(`
	local key = KEYS[1]
	local now_ms = tonumber(ARGV[1])
	local capacity = tonumber(ARGV[2])
	local refill_tokens = tonumber(ARGV[3])
	local interval_ms = tonumber(ARGV[4])
	local ttl_seconds = tonumber(ARGV[5])

	local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
	local tokens = tonumber(state[1])
	local last_refill = tonumber(state[2])

	if tokens == nil or last_refill == nil then
		tokens = capacity
		last_refill = now_ms
	end

	if interval_ms > 0 and refill_tokens > 0 then
		local elapsed = math.max(0, now_ms - last_refill)
		local intervals = math.floor(elapsed / interval_ms)
		if intervals > 0 then
			tokens = math.min(capacity, tokens + (intervals * refill_tokens))
			last_refill = last_refill + (intervals * interval_ms)
		end
	end

	local allowed = 0
	local retry_after_ms = 0
	if tokens > 0 then
		allowed = 1
		tokens = tokens - 1
	else
		local until_next = interval_ms - (now_ms - last_refill)
		if until_next < 0 then until_next = 0 end
		retry_after_ms = until_next
	end

	redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
	redis.call('EXPIRE', key, ttl_seconds)

	return { allowed, tokens, retry_after_ms }
`)

type takeResult struct {
	allowed   bool
	remaining int64
	retryMs   int64
}

type bucket interface {
	take(ctx context.Context, key string) (takeResult, error)
}

type redisBucket struct {
	rdb *redis.Client
	cfg utils.RateLimitConfig
}

func (b *redisBucket) take(ctx context.Context, key string) (takeResult, error) {
	vals, err := tokenBucketScript.Run(ctx, b.rdb, []string{key},
		time.Now().UnixMilli(),
		b.cfg.Capacity,
		b.cfg.RefillTokens,
		b.cfg.RefillInterval.Milliseconds(),
		int64(b.cfg.TTL/time.Second),
	).Int64Slice()
	if err != nil {
		return takeResult{}, err
	}
	if len(vals) != 3 {
		return takeResult{}, fmt.Errorf("unexpected token bucket result %v", vals)
	}

	return takeResult{allowed: vals[0] == 1, remaining: vals[1], retryMs: vals[2]}, nil
}

// RateLimit limits requests per client IP and route. It is a pass-through
// when disabled or when no Redis client is available, and it fails open on
// Redis errors.
func RateLimit(cfg utils.RateLimitConfig, rdb *redis.Client, logger *zap.Logger) func(http.Handler) http.Handler {
	if !cfg.Enabled || rdb == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return rateLimit(cfg, &redisBucket{rdb: rdb, cfg: cfg}, logger)
}

func rateLimit(cfg utils.RateLimitConfig, b bucket, logger *zap.Logger) func(http.Handler) http.Handler {
	log := logger.With(zap.String("middleware", "ratelimit"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := rateLimitKey(cfg.Prefix, r)

			res, err := b.take(r.Context(), key)
			if err != nil {
				log.Warn("Rate limiter unavailable, allowing request",
					zap.Error(err),
					zap.String("key", key))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(res.remaining, 10))

			if !res.allowed {
				secs := int(math.Ceil(float64(res.retryMs) / 1000.0))
				w.Header().Set("Retry-After", strconv.Itoa(secs))

				log.Info("Rate limit exceeded",
					zap.String("key", key),
					zap.Int64("retry_after_ms", res.retryMs))

				utils.ResponseStatus(w, r, http.StatusTooManyRequests, "Too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// rateLimitKey is prefix:ip:METHOD:route. The chi route pattern is used when
// known so /showtimes/1 and /showtimes/2 share a bucket.
func rateLimitKey(prefix string, r *http.Request) string {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		ip = host
	}

	route := r.URL.Path
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			route = pattern
		}
	}

	return fmt.Sprintf("%s:%s:%s:%s", prefix, ip, r.Method, route)
}
