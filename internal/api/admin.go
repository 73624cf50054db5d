package api

import (
	"net/http" // HTTP status codes

	"storefront/internal/domain" // Importing domain models
	"storefront/internal/store"  // Repository layer

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/redis/go-redis/v9"  // Redis client for cache invalidation
	"github.com/shopspring/decimal" // Money amounts
	"github.com/sirupsen/logrus"    // Logging library
)

// Request struct for creating and updating items
type ItemRequest struct {
	Name        string          `json:"name" binding:"required"`                              // Unique item name
	Description string          `json:"description" binding:"required"`                       // Short description
	Price       decimal.Decimal `json:"price" binding:"required"`                             // Unit price
	Image       string          `json:"image" binding:"required"`                             // Image URL
	Stock       string          `json:"stock" binding:"required,oneof=in_stock out_of_stock"` // Stock state
	Weight      float64         `json:"weight" binding:"required"`                            // Shipping weight
	CategoryID  uint            `json:"category_id" binding:"required"`                       // Category reference
}

// Request struct for creating categories
type CategoryRequest struct {
	Name string `json:"name" binding:"required"` // Unique category name
}

// AddItemHandler creates a catalog item
func AddItemHandler(catalog *store.CatalogStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ItemRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Prices cannot be negative
		if req.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
			return
		}
		item := domain.Item{
			Name:        req.Name,                     // Unique item name
			Description: req.Description,              // Short description
			Price:       req.Price,                    // Unit price
			Image:       req.Image,                    // Image URL
			Stock:       domain.StockState(req.Stock), // Stock state
			Weight:      req.Weight,                   // Shipping weight
			CategoryID:  req.CategoryID,               // Category reference
		}
		if err := catalog.CreateItem(&item); err != nil {
			c.JSON(storeStatus(err), gin.H{"error": "Failed to create item"})
			return
		}
		// Drop stale catalog listings
		invalidateCatalog(c.Request.Context(), rdb, item.CategoryID)
		logrus.WithFields(logrus.Fields{"item_id": item.ID, "name": item.Name}).Info("Item created")
		c.JSON(http.StatusCreated, item)
	}
}

// UpdateProductHandler overwrites an existing item's fields
func UpdateProductHandler(catalog *store.CatalogStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		var req ItemRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Prices cannot be negative
		if req.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
			return
		}
		// The previous category's listing may also be stale after a move
		previous, err := catalog.ItemByID(id)
		if err != nil {
			c.JSON(storeStatus(err), gin.H{"error": "Item not found"})
			return
		}
		item := domain.Item{
			ID:          id,                           // Existing item
			Name:        req.Name,                     // Unique item name
			Description: req.Description,              // Short description
			Price:       req.Price,                    // Unit price
			Image:       req.Image,                    // Image URL
			Stock:       domain.StockState(req.Stock), // Stock state
			Weight:      req.Weight,                   // Shipping weight
			CategoryID:  req.CategoryID,               // Category reference
		}
		if err := catalog.UpdateItem(&item); err != nil {
			c.JSON(storeStatus(err), gin.H{"error": "Failed to update item"})
			return
		}
		// Drop stale catalog listings for both the old and the new category
		invalidateCatalog(c.Request.Context(), rdb, previous.CategoryID, item.CategoryID)
		logrus.WithFields(logrus.Fields{"item_id": item.ID, "name": item.Name}).Info("Item updated")
		c.JSON(http.StatusOK, item)
	}
}

// DeleteProductHandler removes an item from the catalog
func DeleteProductHandler(catalog *store.CatalogStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		// Needed for cache invalidation after the delete
		item, err := catalog.ItemByID(id)
		if err != nil {
			c.JSON(storeStatus(err), gin.H{"error": "Item not found"})
			return
		}
		if err := catalog.DeleteItem(id); err != nil {
			c.JSON(storeStatus(err), gin.H{"error": "Failed to delete item"})
			return
		}
		// Drop stale catalog listings
		invalidateCatalog(c.Request.Context(), rdb, item.CategoryID)
		logrus.WithFields(logrus.Fields{"item_id": id, "name": item.Name}).Info("Item deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
	}
}

// ListCategoriesHandler returns all categories for the management screen
func ListCategoriesHandler(catalog *store.CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		cats, err := catalog.Categories()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": cats})
	}
}

// AddCategoryHandler creates a category
func AddCategoryHandler(catalog *store.CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CategoryRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		cat, err := catalog.CreateCategory(req.Name)
		if err != nil {
			c.JSON(storeStatus(err), gin.H{"error": "Category already exists"})
			return
		}
		logrus.WithFields(logrus.Fields{"category_id": cat.ID, "name": cat.Name}).Info("Category created")
		c.JSON(http.StatusCreated, cat)
	}
}

// DeleteCategoryHandler removes a category that no item references anymore
func DeleteCategoryHandler(catalog *store.CatalogStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		if err := catalog.DeleteCategory(id); err != nil {
			// A category still in use is a conflict, nothing is changed
			c.JSON(storeStatus(err), gin.H{"error": err.Error()})
			return
		}
		// Drop the category's cached listing
		invalidateCatalog(c.Request.Context(), rdb, id)
		logrus.WithFields(logrus.Fields{"category_id": id}).Info("Category deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
	}
}
