package cost

import (
	"context"
	"errors"
	"strconv"
	"time"

	"rentercheck/internal/logger"
	"rentercheck/internal/metrics"

	"github.com/redis/go-redis/v9"
)

// ErrLookup is returned instead of a zero-cost fallback when the
// resolver runs fail-closed.
var ErrLookup = errors.New("action cost lookup failed")

// Resolver answers "how many credits does billing this identifier
// type cost right now". Reads go through a short-lived redis cache;
// admin writes invalidate it. Missing or inactive rows resolve to 0.
// Lookup errors resolve to 0 only when failOpen is set.
type Resolver struct {
	repo     Repository
	cache    *redis.Client
	cacheTTL time.Duration
	failOpen bool
}

func NewResolver(repo Repository, cache *redis.Client, cacheTTL time.Duration, failOpen bool) *Resolver {
	return &Resolver{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		failOpen: failOpen,
	}
}

func cacheKey(actionKey string) string {
	return "action_cost:" + actionKey
}

// Cost returns the non-negative credit price for an action key.
// 0 means free or disabled.
func (r *Resolver) Cost(ctx context.Context, actionKey string) (int64, error) {
	if r.cache != nil {
		if cached, err := r.cache.Get(ctx, cacheKey(actionKey)).Result(); err == nil {
			if v, err := strconv.ParseInt(cached, 10, 64); err == nil {
				return v, nil
			}
		}
	}

	ac, err := r.repo.GetByKey(ctx, actionKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// No pricing row configured. Fail-open treats the
			// action as free so incomplete configuration never
			// blocks a search.
			if r.failOpen {
				logger.Warn("no cost configured, treating as free", "action", actionKey)
				metrics.RecordCostFallback(actionKey)
				return r.storeAndReturn(ctx, actionKey, 0), nil
			}
			return 0, ErrLookup
		}
		if r.failOpen {
			logger.Warn("cost lookup failed, treating as free", "action", actionKey, "error", err)
			metrics.RecordCostFallback(actionKey)
			return 0, nil
		}
		return 0, ErrLookup
	}

	value := ac.Cost
	if !ac.IsActive {
		value = 0
	}
	return r.storeAndReturn(ctx, actionKey, value), nil
}

func (r *Resolver) storeAndReturn(ctx context.Context, actionKey string, value int64) int64 {
	if r.cache != nil {
		if err := r.cache.Set(ctx, cacheKey(actionKey), strconv.FormatInt(value, 10), r.cacheTTL).Err(); err != nil {
			logger.Debug("cost cache write failed", "action", actionKey, "error", err)
		}
	}
	return value
}

// Invalidate drops the cached price after an admin edit so the next
// gate attempt sees the new value immediately.
func (r *Resolver) Invalidate(ctx context.Context, actionKey string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Del(ctx, cacheKey(actionKey)).Err(); err != nil {
		logger.Debug("cost cache invalidation failed", "action", actionKey, "error", err)
	}
}
