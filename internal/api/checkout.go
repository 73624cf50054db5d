package api

import (
	"net/http" // HTTP status codes

	"storefront/internal/notify"  // Order confirmation notifications
	"storefront/internal/payment" // Payment gateway client
	"storefront/internal/store"   // Repository layer

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// CheckoutHandler starts a checkout attempt: it turns the caller's cart into
// gateway line items and requests a hosted payment session. Nothing is
// persisted here; an abandoned session leaves the cart untouched. Per the
// storefront's checkout contract every failure is a 403 with an error body.
func CheckoutHandler(carts *store.CartStore, gw *payment.Client, baseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID") // Set by the JWT middleware
		rows, err := carts.Rows(userID)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Failed to read cart"})
			return
		}
		// An empty cart has nothing to pay for
		if len(rows) == 0 {
			c.JSON(http.StatusForbidden, gin.H{"error": "Cart is empty"})
			return
		}
		// One gateway line per cart row, unit price in minor currency units
		lines := make([]payment.LineItem, len(rows))
		for i, r := range rows {
			lines[i] = payment.LineItem{
				Name:     r.Item.Name,
				Amount:   r.Item.Price.Shift(2).IntPart(), // Minor units
				Quantity: r.Quantity,
			}
		}
		// The gateway substitutes the session id into the success URL
		successURL := baseURL + "/order_confirmation?session_id={CHECKOUT_SESSION_ID}"
		cancelURL := baseURL + "/cart"
		sess, err := gw.CreateSession(lines, successURL, cancelURL)
		if err != nil {
			// Gateway failures surface as a 403 with the error message
			logrus.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).Error("Checkout session creation failed")
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		// Log the started checkout attempt
		logrus.WithFields(logrus.Fields{"user_id": userID, "session_id": sess.ID}).Info("Checkout session created")
		c.JSON(http.StatusOK, gin.H{"id": sess.ID}) // The opaque payment session handle
	}
}

// OrderConfirmationHandler completes a checkout attempt: it re-reads the
// gateway session, and once the session is paid converts the cart into an
// order snapshot and clears the cart in a single transaction. The
// notification afterwards is best effort and never fails the request.
// Confirming the same session twice returns the same order.
func OrderConfirmationHandler(orders *store.OrderStore, users *store.UserStore, gw *payment.Client, notifier notify.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID") // Set by the JWT middleware
		sessionID := c.Query("session_id")
		if sessionID == "" {
			// The session handle is mandatory
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing session_id"})
			return
		}
		// Re-read the session to learn the payment status
		sess, err := gw.GetSession(sessionID)
		if err != nil {
			logrus.WithFields(logrus.Fields{"user_id": userID, "session_id": sessionID, "error": err.Error()}).Error("Gateway session lookup failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment gateway error"})
			return
		}
		// Only a paid session produces an order
		if sess.PaymentStatus != "paid" {
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "Payment not completed"})
			return
		}
		// Order write and cart clear happen together or not at all
		order, err := orders.PlaceOrder(userID, sessionID)
		if err != nil {
			logrus.WithFields(logrus.Fields{"user_id": userID, "session_id": sessionID, "error": err.Error()}).Error("Order placement failed")
			c.JSON(storeStatus(err), gin.H{"error": err.Error()})
			return
		}
		// Log the placed order
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,
			"order_id":   order.ID,
			"session_id": sessionID,
			"total":      order.TotalAmount.String(),
		}).Info("Order placed")
		// Best-effort notification outside the transaction
		if user, err := users.ByID(userID); err == nil {
			if err := notifier.OrderConfirmed(user, order); err != nil {
				logrus.WithFields(logrus.Fields{"order_id": order.ID, "error": err.Error()}).Warn("Order notification failed")
			}
		}
		c.JSON(http.StatusOK, order)
	}
}

// OrderHistoryHandler lists the caller's orders, newest first
func OrderHistoryHandler(orders *store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID") // Set by the JWT middleware
		list, err := orders.ByUser(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": list})
	}
}

// OrderHandler returns one of the caller's orders with its snapshot lines
func OrderHandler(orders *store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID") // Set by the JWT middleware
		orderID, ok := paramID(c, "order_id")
		if !ok {
			return
		}
		order, err := orders.ByID(userID, orderID)
		if err != nil {
			// Another user's order looks identical to a missing one
			c.JSON(storeStatus(err), gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
