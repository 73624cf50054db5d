package main

import (
	"context"                        // context package is needed for Redis operations
	"log"                            // log package is needed for logging
	"storefront/internal/api"        // Custom package for API handlers
	"storefront/internal/config"     // Custom package for configuration
	"storefront/internal/middleware" // Custom package for middleware
	"storefront/internal/notify"     // Order confirmation notifications
	"storefront/internal/payment"    // Payment gateway client
	"storefront/internal/store"      // Repository layer

	"github.com/gin-contrib/cors"  // CORS middleware
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Repository layer
	users := store.NewUserStore(db)
	catalog := store.NewCatalogStore(db)
	carts := store.NewCartStore(db)
	orders := store.NewOrderStore(db)

	// Payment gateway client and order notifier
	gateway := payment.NewClient(cfg.GatewaySecret, cfg.GatewayAPIURL)
	notifier := notify.LogNotifier{}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Allow the storefront frontend to call the API
	r.Use(cors.Default())

	// Public catalog routes
	r.GET("/", api.IndexHandler(catalog, redisClient))              // Catalog listing, optional ?category=
	r.GET("/items/:id", api.ItemHandler(catalog))                   // Single item
	r.GET("/payment_key", api.PaymentKeyHandler(cfg.GatewayPublic)) // Gateway public key for checkout pages

	// Auth routes
	r.POST("/register", api.RegisterHandler(users, cfg.AdminEmail)) // Registration endpoint
	r.POST("/login", api.LoginHandler(users, cfg.JWTSecret))        // Login endpoint

	// Authenticated routes (protected by JWT)
	authGroup := r.Group("/")
	authGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret, redisClient))
	authGroup.GET("/logout", api.LogoutHandler(redisClient))      // Logout denylists the token
	authGroup.DELETE("/account", api.DeleteAccountHandler(users)) // Account deletion with cart cleanup

	// Cart routes
	authGroup.GET("/cart", api.CartHandler(carts))                                      // Cart contents and subtotal
	authGroup.POST("/add_to_cart/:item_id", api.AddToCartHandler(carts))                // Add one unit of an item
	authGroup.POST("/update_cart/:cart_item_id", api.UpdateCartHandler(carts))          // Increase/decrease quantity
	authGroup.POST("/delete_cart_item/:cart_item_id", api.DeleteCartItemHandler(carts)) // Remove a row

	// Checkout and order routes
	authGroup.POST("/checkout", api.CheckoutHandler(carts, gateway, cfg.BaseURL))                        // Start a payment session
	authGroup.GET("/order_confirmation", api.OrderConfirmationHandler(orders, users, gateway, notifier)) // Finalize a paid session
	authGroup.GET("/order_history", api.OrderHistoryHandler(orders))                                     // The caller's orders
	authGroup.GET("/order/:order_id", api.OrderHandler(orders))                                          // One order with its snapshot

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/")
	adminGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret, redisClient), middleware.AdminOnlyMiddleware(users))
	adminGroup.POST("/add_item", api.AddItemHandler(catalog, redisClient))                   // Create an item
	adminGroup.GET("/product/:id", api.ItemHandler(catalog))                                 // Item for the edit screen
	adminGroup.POST("/product/:id", api.UpdateProductHandler(catalog, redisClient))          // Update an item
	adminGroup.POST("/delete_product/:id", api.DeleteProductHandler(catalog, redisClient))   // Delete an item
	adminGroup.GET("/manage_categories", api.ListCategoriesHandler(catalog))                 // List categories
	adminGroup.POST("/manage_categories", api.AddCategoryHandler(catalog))                   // Create a category
	adminGroup.POST("/delete_category/:id", api.DeleteCategoryHandler(catalog, redisClient)) // Delete an empty category

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
