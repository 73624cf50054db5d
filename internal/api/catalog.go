package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Cache TTL

	"storefront/internal/domain" // Importing domain models
	"storefront/internal/store"  // Repository layer
	"storefront/internal/utils"  // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// catalogCacheKey builds the cache key for one catalog listing
func catalogCacheKey(categoryID uint) string {
	return "catalog:items:cat:" + strconv.Itoa(int(categoryID))
}

// invalidateCatalog drops the cached listings touched by an admin write: the
// unfiltered listing plus each affected category's listing
func invalidateCatalog(ctx context.Context, rdb *redis.Client, categoryIDs ...uint) {
	_ = utils.DeleteCache(ctx, rdb, catalogCacheKey(0)) // Unfiltered listing
	for _, id := range categoryIDs {
		_ = utils.DeleteCache(ctx, rdb, catalogCacheKey(id)) // Per-category listing
	}
}

// IndexHandler lists the catalog, optionally filtered to one category.
// Listings are served from a short-lived redis cache when possible.
func IndexHandler(catalog *store.CatalogStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var categoryID uint // Zero means no filter
		if v := c.Query("category"); v != "" {
			id, err := strconv.ParseUint(v, 10, 32)
			if err != nil {
				// If the filter is not a number, return bad request
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
				return
			}
			categoryID = uint(id)
		}
		// Try the cache first
		var cached []domain.Item
		found, err := utils.GetCache(ctx, rdb, catalogCacheKey(categoryID), &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"items": cached, "cached": true})
			return
		}
		// Cache miss, hit the database
		items, err := catalog.Items(categoryID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
			return
		}
		// Cache the listing for future requests
		_ = utils.SetCache(ctx, rdb, catalogCacheKey(categoryID), items, 60*time.Second)
		c.JSON(http.StatusOK, gin.H{"items": items, "cached": false})
	}
}

// ItemHandler returns a single catalog item
func ItemHandler(catalog *store.CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			// If the id is not a number, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
			return
		}
		item, err := catalog.ItemByID(uint(id))
		if err != nil {
			c.JSON(storeStatus(err), gin.H{"error": "Item not found"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// PaymentKeyHandler exposes the gateway's public key to checkout pages
func PaymentKeyHandler(publicKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"public_key": publicKey})
	}
}
