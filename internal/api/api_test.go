package api

import (
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/notify"
	"storefront/internal/payment"
	"storefront/internal/store"
	"storefront/internal/utils"
)

const testSecret = "test-secret"

// testEnv bundles everything a handler test needs
type testEnv struct {
	db      *gorm.DB
	rdb     *redis.Client
	users   *store.UserStore
	catalog *store.CatalogStore
	carts   *store.CartStore
	orders  *store.OrderStore
}

// newTestEnv opens a throwaway sqlite database and a redis client pointed at
// nothing. The cache helpers degrade to misses when redis is unreachable, so
// handlers still work without a running server.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(
		&domain.User{},
		&domain.Category{},
		&domain.Item{},
		&domain.CartItem{},
		&domain.Order{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:         "127.0.0.1:1", // Nothing listens here
		DialTimeout:  100 * time.Millisecond,
		ReadTimeout:  100 * time.Millisecond,
		WriteTimeout: 100 * time.Millisecond,
		MaxRetries:   -1,
	})
	return &testEnv{
		db:      db,
		rdb:     rdb,
		users:   store.NewUserStore(db),
		catalog: store.NewCatalogStore(db),
		carts:   store.NewCartStore(db),
		orders:  store.NewOrderStore(db),
	}
}

// router wires the test env into the same route layout the server uses
func (e *testEnv) router(gw *payment.Client, adminEmail string) *gin.Engine {
	r := gin.New()
	r.GET("/", IndexHandler(e.catalog, e.rdb))
	r.GET("/items/:id", ItemHandler(e.catalog))
	r.POST("/register", RegisterHandler(e.users, adminEmail))
	r.POST("/login", LoginHandler(e.users, testSecret))

	auth := r.Group("/")
	auth.Use(middleware.JWTAuthMiddleware(testSecret, e.rdb))
	auth.GET("/logout", LogoutHandler(e.rdb))
	auth.GET("/cart", CartHandler(e.carts))
	auth.POST("/add_to_cart/:item_id", AddToCartHandler(e.carts))
	auth.POST("/update_cart/:cart_item_id", UpdateCartHandler(e.carts))
	auth.POST("/delete_cart_item/:cart_item_id", DeleteCartItemHandler(e.carts))
	auth.POST("/checkout", CheckoutHandler(e.carts, gw, "https://shop.example.com"))
	auth.GET("/order_confirmation", OrderConfirmationHandler(e.orders, e.users, gw, notify.LogNotifier{}))
	auth.GET("/order_history", OrderHistoryHandler(e.orders))
	auth.GET("/order/:order_id", OrderHandler(e.orders))

	admin := r.Group("/")
	admin.Use(middleware.JWTAuthMiddleware(testSecret, e.rdb), middleware.AdminOnlyMiddleware(e.users))
	admin.POST("/add_item", AddItemHandler(e.catalog, e.rdb))
	admin.GET("/product/:id", ItemHandler(e.catalog))
	admin.POST("/product/:id", UpdateProductHandler(e.catalog, e.rdb))
	admin.POST("/delete_product/:id", DeleteProductHandler(e.catalog, e.rdb))
	admin.POST("/delete_category/:id", DeleteCategoryHandler(e.catalog, e.rdb))
	admin.GET("/manage_categories", ListCategoriesHandler(e.catalog))
	admin.POST("/manage_categories", AddCategoryHandler(e.catalog))
	return r
}

// seedUser inserts a user and returns its id
func (e *testEnv) seedUser(t *testing.T, username string, admin bool) uint {
	t.Helper()
	u := domain.User{Username: username, Email: username + "@example.com", PasswordHash: "x", IsAdmin: admin}
	if err := e.db.Create(&u).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u.ID
}

// seedItem inserts a category (if needed) and an item
func (e *testEnv) seedItem(t *testing.T, name, price string) *domain.Item {
	t.Helper()
	var cat domain.Category
	if err := e.db.FirstOrCreate(&cat, domain.Category{Name: "General"}).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	item := domain.Item{
		Name:        name,
		Description: "test item",
		Price:       decimal.RequireFromString(price),
		Image:       "https://img.example.com/" + name + ".png",
		Stock:       domain.StockIn,
		Weight:      1.5,
		CategoryID:  cat.ID,
	}
	if err := e.db.Create(&item).Error; err != nil {
		t.Fatalf("seed item %s: %v", name, err)
	}
	return &item
}

// token mints a session token for a seeded user
func (e *testEnv) token(t *testing.T, userID uint) string {
	t.Helper()
	token, err := utils.GenerateJWT(userID, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

// fakeGateway runs an httptest server that mimics the payment gateway. The
// paid map decides which session ids report a completed payment.
func fakeGateway(t *testing.T, paid map[string]bool) (*httptest.Server, *payment.Client) {
	t.Helper()
	mux := gin.New()
	mux.POST("/v1/checkout/sessions", func(c *gin.Context) {
		c.JSON(200, gin.H{"id": "sess_new", "url": "https://pay.example.com/sess_new"})
	})
	mux.GET("/v1/checkout/sessions/:id", func(c *gin.Context) {
		status := "unpaid"
		if paid[c.Param("id")] {
			status = "paid"
		}
		c.JSON(200, gin.H{"id": c.Param("id"), "payment_status": status})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, payment.NewClient("sk_test", srv.URL)
}
