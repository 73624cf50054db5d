package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"storefront/internal/store" // Repository layer

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Request struct for quantity changes
type UpdateCartRequest struct {
	Action string `json:"action" form:"action" binding:"required,oneof=increase decrease"` // Direction of the change
}

// paramID parses a numeric path parameter; ok is false after responding 400
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// AddToCartHandler puts one unit of an item into the caller's cart. A second
// add of the same item increments the existing row rather than duplicating it.
func AddToCartHandler(carts *store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID") // Set by the JWT middleware
		itemID, ok := paramID(c, "item_id")
		if !ok {
			return
		}
		row, err := carts.Add(userID, itemID)
		if err != nil {
			// Missing item is 404, out-of-stock is a conflict
			c.JSON(storeStatus(err), gin.H{"error": err.Error()})
			return
		}
		// Log the cart mutation
		logrus.WithFields(logrus.Fields{
			"user_id":  userID,
			"item_id":  itemID,
			"quantity": row.Quantity,
		}).Info("Item added to cart")
		c.JSON(http.StatusOK, row)
	}
}

// UpdateCartHandler increments or decrements one cart row. Decreasing a
// quantity-one row removes it.
func UpdateCartHandler(carts *store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID") // Set by the JWT middleware
		cartItemID, ok := paramID(c, "cart_item_id")
		if !ok {
			return
		}
		var req UpdateCartRequest // Accepts form or JSON bodies
		if err := c.ShouldBind(&req); err != nil {
			// Action must be increase or decrease
			c.JSON(http.StatusBadRequest, gin.H{"error": "Action must be increase or decrease"})
			return
		}
		delta := 1 // Increase by default
		if req.Action == "decrease" {
			delta = -1
		}
		row, removed, err := carts.ChangeQuantity(userID, cartItemID, delta)
		if err != nil {
			// A row owned by somebody else looks identical to a missing row
			c.JSON(storeStatus(err), gin.H{"error": "Cart item not found"})
			return
		}
		if removed {
			c.JSON(http.StatusOK, gin.H{"removed": true})
			return
		}
		c.JSON(http.StatusOK, row)
	}
}

// DeleteCartItemHandler removes one cart row outright
func DeleteCartItemHandler(carts *store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID") // Set by the JWT middleware
		cartItemID, ok := paramID(c, "cart_item_id")
		if !ok {
			return
		}
		if err := carts.Remove(userID, cartItemID); err != nil {
			c.JSON(storeStatus(err), gin.H{"error": "Cart item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
	}
}

// CartHandler returns the caller's cart rows and their running subtotal
func CartHandler(carts *store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID") // Set by the JWT middleware
		rows, err := carts.Rows(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		subtotal, err := carts.Subtotal(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute subtotal"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"items":    rows,              // Cart rows with items preloaded
			"subtotal": subtotal.String(), // Sum of price x quantity
		})
	}
}
