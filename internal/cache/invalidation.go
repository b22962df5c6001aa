package cache

import (
	"context"
	"fmt"
	"log"
)

// InvalidationStrategy names a class of cached response to drop.
type InvalidationStrategy string

const (
	InvalidateAll      InvalidationStrategy = "all"
	InvalidateGameday  InvalidationStrategy = "gameday"
	InvalidateRulesets InvalidationStrategy = "rulesets"
	InvalidateInjuries InvalidationStrategy = "injuries"
)

// InvalidationManager handles cache invalidation for the HTTP surface.
type InvalidationManager struct{}

// NewInvalidationManager creates a new invalidation manager.
func NewInvalidationManager() *InvalidationManager {
	return &InvalidationManager{}
}

// InvalidateByStrategy invalidates cache based on strategy.
func (m *InvalidationManager) InvalidateByStrategy(ctx context.Context, strategy InvalidationStrategy) error {
	switch strategy {
	case InvalidateAll:
		return m.invalidateAll(ctx)
	case InvalidateGameday:
		return m.invalidateByPattern(ctx, "gameday:*")
	case InvalidateRulesets:
		return m.invalidateByPattern(ctx, "rulesets:*")
	case InvalidateInjuries:
		return m.invalidateByPattern(ctx, "injuries:*")
	default:
		return fmt.Errorf("unknown invalidation strategy: %s", strategy)
	}
}

// InvalidateGamedayForWeek drops every cached gameday_predictions
// response for (ruleset, season, week). It is not invoked automatically
// when a cutoff artifact for that key retrains.
func (m *InvalidationManager) InvalidateGamedayForWeek(ctx context.Context, ruleset string, season, week int) error {
	pattern := InvalidateGamedayCache(ruleset, season, week)
	if err := m.invalidateByPattern(ctx, pattern); err != nil {
		return err
	}
	log.Printf("[CACHE] Invalidated gameday predictions for %s season %d week %d", ruleset, season, week)
	return nil
}

// InvalidateAfterInjuryUpdate drops cached injury and gameday responses.
// It is not invoked automatically by any injury source.
func (m *InvalidationManager) InvalidateAfterInjuryUpdate(ctx context.Context) error {
	for _, pattern := range []string{"injuries:*", "gameday:*"} {
		if err := m.invalidateByPattern(ctx, pattern); err != nil {
			log.Printf("[CACHE] Error invalidating pattern %s: %v", pattern, err)
		}
	}
	log.Printf("[CACHE] Invalidated after injury feed update")
	return nil
}

func (m *InvalidationManager) invalidateByPattern(ctx context.Context, pattern string) error {
	if client == nil {
		return fmt.Errorf("redis not initialized")
	}

	keys, err := client.Keys(ctx, pattern).Result()
	if err != nil {
		return fmt.Errorf("failed to get keys for pattern %s: %w", pattern, err)
	}
	if len(keys) == 0 {
		log.Printf("[CACHE] No keys to invalidate for pattern: %s", pattern)
		return nil
	}

	deleted, err := client.Del(ctx, keys...).Result()
	if err != nil {
		return fmt.Errorf("failed to delete keys: %w", err)
	}

	log.Printf("[CACHE] Invalidated %d keys for pattern: %s", deleted, pattern)
	return nil
}

func (m *InvalidationManager) invalidateAll(ctx context.Context) error {
	if client == nil {
		return fmt.Errorf("redis not initialized")
	}
	if err := client.FlushDB(ctx).Err(); err != nil {
		return fmt.Errorf("failed to flush cache: %w", err)
	}
	log.Printf("[CACHE] Invalidated all cache")
	return nil
}

// CacheMetrics returns cache statistics (the total key count). No HTTP
// handler exposes it.
func (m *InvalidationManager) CacheMetrics(ctx context.Context) (map[string]interface{}, error) {
	if client == nil {
		return map[string]interface{}{"error": "redis not initialized"}, nil
	}

	dbSize, err := client.DBSize(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get cache size: %w", err)
	}
	return map[string]interface{}{"total_keys": dbSize}, nil
}
