package api

import (
	"context"
	"fmt"
	"net/http"

	"finance_tracker/internal/middleware"
	"finance_tracker/internal/utils"

	"github.com/gin-gonic/gin"
)

// CacheHeader reports HIT or MISS on cached list endpoints
const CacheHeader = "X-Cache"

func categoriesKey(userID uint) string { return fmt.Sprintf("categories:user:%d", userID) }
func expensesKey(userID uint) string   { return fmt.Sprintf("expenses:user:%d", userID) }
func budgetsKey(userID uint) string    { return fmt.Sprintf("budgets:user:%d", userID) }

// serveCachedList answers from the cache when possible, otherwise loads, stores and answers
func serveCachedList[T any](c *gin.Context, cache *utils.Cache, key, action string, load func(ctx context.Context) ([]T, error)) {
	ctx := c.Request.Context()
	var cached []T
	found, err := cache.Get(ctx, key, &cached)
	if err != nil {
		middleware.Logger(c).WithError(err).WithField("key", key).Warn("Cache read failed")
	}
	if err == nil && found {
		c.Header(CacheHeader, "HIT")
		c.JSON(http.StatusOK, cached)
		return
	}
	items, err := load(ctx)
	if err != nil {
		respondError(c, err, action)
		return
	}
	if err := cache.Set(ctx, key, items); err != nil {
		middleware.Logger(c).WithError(err).WithField("key", key).Warn("Cache write failed")
	}
	c.Header(CacheHeader, "MISS")
	c.JSON(http.StatusOK, items)
}

// invalidate drops cached lists after a write; failures only cost freshness until the TTL
func invalidate(c *gin.Context, cache *utils.Cache, keys ...string) {
	if err := cache.Delete(c.Request.Context(), keys...); err != nil {
		middleware.Logger(c).WithError(err).WithField("keys", keys).Warn("Cache invalidation failed")
	}
}
