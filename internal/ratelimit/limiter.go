// Package ratelimit throttles mutating routes with a Redis fixed-window counter.
package ratelimit

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// noExpiry is what TTL reports for a key that exists without a timeout.
const noExpiry = time.Duration(-1)

// Config is the per-window budget.
type Config struct {
	MaxRequests int
	Window      time.Duration
	KeyPrefix   string
}

// counterStore is the part of the Redis client the limiter talks to.
type counterStore interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

// Limiter counts requests per client IP and route. When Redis is unreachable
// requests are let through.
type Limiter struct {
	store    counterStore
	cfg      Config
	logger   zerolog.Logger
	rejected *prometheus.CounterVec
	timeout  time.Duration
}

func NewLimiter(store counterStore, cfg Config, reg prometheus.Registerer, logger zerolog.Logger) *Limiter {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "rl:trivia"
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trivia",
		Name:      "rate_limited_requests_total",
		Help:      "Requests rejected by the rate limiter.",
	}, []string{"route"})
	if reg != nil {
		reg.MustRegister(rejected)
	}
	return &Limiter{
		store:    store,
		cfg:      cfg,
		logger:   logger.With().Str("component", "ratelimit").Logger(),
		rejected: rejected,
		timeout:  2 * time.Second,
	}
}

// Wrap limits next. The key is built from the client IP, method and route pattern.
func (l *Limiter) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		route := r.Pattern
		if route == "" {
			route = r.Method + " " + r.URL.Path
		}
		key := fmt.Sprintf("%s:%s:%s", l.cfg.KeyPrefix, clientIP(r), route)
		logger := logging.FromContextOr(r.Context(), l.logger)

		ctx, cancel := context.WithTimeout(r.Context(), l.timeout)
		defer cancel()

		count, err := l.store.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable, allowing request")
			next(w, r)
			return
		}
		if count == 1 {
			if err := l.store.Expire(ctx, key, l.cfg.Window).Err(); err != nil {
				logger.Warn().Err(err).Str("key", key).Msg("failed to set rate limit window")
			}
		}

		remaining := max(l.cfg.MaxRequests-int(count), 0)
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.cfg.MaxRequests))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if int(count) > l.cfg.MaxRequests {
			retryAfter := int(l.cfg.Window.Seconds())
			ttl, err := l.store.TTL(ctx, key).Result()
			switch {
			case err == nil && ttl > 0:
				retryAfter = int(ttl.Seconds())
			case err == nil && ttl == noExpiry:
				// the first EXPIRE of this window was lost; re-arm it
				if err := l.store.Expire(ctx, key, l.cfg.Window).Err(); err != nil {
					logger.Warn().Err(err).Str("key", key).Msg("failed to set rate limit window")
				}
			}
			l.rejected.WithLabelValues(route).Inc()
			logger.Info().Str("route", route).Int64("count", count).Msg("rate limit exceeded")
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			httperrors.RespondTooManyRequests(w)
			return
		}
		next(w, r)
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
