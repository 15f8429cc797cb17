package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/stegavault/stegavault/internal/adapter"
	"github.com/stegavault/stegavault/internal/config"
	"github.com/stegavault/stegavault/internal/logger"
)

// Route classes limited by the API
const (
	RouteMint     = "mint"
	RoutePurchase = "purchase"
	RouteVerify   = "verify"
)

const (
	// redisProbeInterval spaces reconnection attempts while Redis is down
	redisProbeInterval = 10 * time.Second
	// maxLocalKeys bounds the in-process limiter table
	maxLocalKeys = 10000
)

// Decision is the outcome of a rate limit check
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Limiter decides whether a caller may make another request of a route class
//
//go:generate mockgen -source=limiter.go -destination=../mocks/ratelimit.go -package=mocks -mock_names=Limiter=MockRateLimiter
type Limiter interface {
	// Allow consumes one request of route for key. Routes without a configured limit are always allowed.
	Allow(ctx context.Context, route, key string) (Decision, error)

	// Close releases the Redis connection
	Close() error
}

type limiter struct {
	config         config.RateLimitConfig
	redis          adapter.RedisClient
	clock          adapter.Clock
	redisAvailable atomic.Bool

	mu        sync.Mutex
	local     map[string]*rate.Limiter
	nextProbe time.Time
}

// NewLimiter creates a limiter. With a nil Redis client every limit is kept in process.
func NewLimiter(cfg config.RateLimitConfig, rc adapter.RedisClient, clock adapter.Clock) (Limiter, error) {
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid rate limit configuration: %w", err)
	}

	l := &limiter{
		config: cfg,
		redis:  rc,
		clock:  clock,
		local:  make(map[string]*rate.Limiter),
	}

	if rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := rc.Ping(ctx); err != nil {
			if !cfg.EnableLocalFallback {
				return nil, fmt.Errorf("redis unavailable and fallback disabled: %w", err)
			}
			logger.Warn("Redis unavailable, rate limits are kept in process", zap.Error(err))
			l.nextProbe = clock.Now().Add(redisProbeInterval)
		} else {
			l.redisAvailable.Store(true)
		}
	}

	logger.Info("Rate limiter initialized",
		zap.Bool("distributed", rc != nil),
		zap.Int("routes", len(cfg.Routes)),
	)

	return l, nil
}

// Allow consumes one request of route for key
func (l *limiter) Allow(ctx context.Context, route, key string) (Decision, error) {
	routeCfg, ok := l.config.Routes[route]
	if !ok {
		return Decision{Allowed: true}, nil
	}

	if l.redis != nil {
		if !l.redisAvailable.Load() {
			l.probeRedis(ctx)
		}

		if l.redisAvailable.Load() {
			decision, err := l.allowDistributed(ctx, route, key, routeCfg)
			if err == nil {
				return decision, nil
			}
			if ctx.Err() != nil {
				return Decision{}, ctx.Err()
			}

			l.markRedisDown(err)
			if !l.config.EnableLocalFallback {
				return Decision{}, fmt.Errorf("redis rate limiter unavailable: %w", err)
			}
		} else if !l.config.EnableLocalFallback {
			return Decision{}, fmt.Errorf("redis rate limiter unavailable")
		}
	}

	return l.allowLocal(route, key, routeCfg), nil
}

func (l *limiter) allowDistributed(ctx context.Context, route, key string, routeCfg config.RouteLimitConfig) (Decision, error) {
	res, err := l.redis.Allow(ctx, l.config.KeyPrefix+route+":"+key, redis_rate.Limit{
		Rate:   routeCfg.RequestsPerMinute,
		Burst:  routeCfg.Burst,
		Period: time.Minute,
	})
	if err != nil {
		return Decision{}, err
	}

	if res.Allowed == 0 {
		logger.DebugCtx(ctx, "Rate limit exceeded",
			zap.String("route", route),
			zap.String("key", key),
			zap.Duration("retry_after", res.RetryAfter),
		)
		return Decision{Allowed: false, RetryAfter: res.RetryAfter}, nil
	}

	return Decision{Allowed: true}, nil
}

func (l *limiter) allowLocal(route, key string, routeCfg config.RouteLimitConfig) Decision {
	perSecond := float64(routeCfg.RequestsPerMinute) / 60
	if l.redis != nil {
		perSecond *= l.config.LocalFallbackMultiplier
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	localKey := route + ":" + key
	lim, ok := l.local[localKey]
	if !ok {
		if len(l.local) >= maxLocalKeys {
			l.local = make(map[string]*rate.Limiter)
		}
		lim = rate.NewLimiter(rate.Limit(perSecond), routeCfg.Burst)
		l.local[localKey] = lim
	}

	now := l.clock.Now()
	reservation := lim.ReserveN(now, 1)
	delay := reservation.DelayFrom(now)
	if delay == 0 {
		return Decision{Allowed: true}
	}

	reservation.CancelAt(now)
	return Decision{Allowed: false, RetryAfter: delay}
}

// probeRedis pings Redis at most once per probe interval while it is marked down
func (l *limiter) probeRedis(ctx context.Context) {
	l.mu.Lock()
	now := l.clock.Now()
	if now.Before(l.nextProbe) {
		l.mu.Unlock()
		return
	}
	l.nextProbe = now.Add(redisProbeInterval)
	l.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := l.redis.Ping(ctx); err != nil {
		return
	}

	if l.redisAvailable.CompareAndSwap(false, true) {
		logger.Info("Redis connection restored")
	}
}

func (l *limiter) markRedisDown(err error) {
	if !l.redisAvailable.CompareAndSwap(true, false) {
		return
	}

	logger.Warn("Redis rate limiter error, falling back to local", zap.Error(err))

	l.mu.Lock()
	l.nextProbe = l.clock.Now().Add(redisProbeInterval)
	l.mu.Unlock()
}

// Close releases the Redis connection
func (l *limiter) Close() error {
	if l.redis == nil {
		return nil
	}
	return l.redis.Close()
}

// validateConfig validates and sets defaults for the configuration
func validateConfig(cfg *config.RateLimitConfig) error {
	routes := make(map[string]config.RouteLimitConfig, len(cfg.Routes))
	for name, route := range cfg.Routes {
		if route.RequestsPerMinute <= 0 {
			return fmt.Errorf("route %s: requests_per_minute must be positive", name)
		}
		if route.Burst <= 0 {
			route.Burst = 1
		}
		routes[name] = route
	}
	cfg.Routes = routes

	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "stegavault:limiter:"
	}

	if cfg.LocalFallbackMultiplier <= 0 {
		cfg.LocalFallbackMultiplier = 0.5
	}

	return nil
}
