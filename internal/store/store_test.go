package store

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storefront/internal/domain"
)

// newTestDB opens a throwaway sqlite database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
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
	return db
}

// seedUser inserts a user and returns its id
func seedUser(t *testing.T, db *gorm.DB, username string) uint {
	t.Helper()
	u := domain.User{Username: username, Email: username + "@example.com", PasswordHash: "x"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u.ID
}

// seedItem inserts a category (if needed) and an item, returning the item
func seedItem(t *testing.T, db *gorm.DB, name string, price string) *domain.Item {
	t.Helper()
	var cat domain.Category
	if err := db.FirstOrCreate(&cat, domain.Category{Name: "General"}).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	p, err := decimal.NewFromString(price)
	if err != nil {
		t.Fatalf("bad price %s: %v", price, err)
	}
	item := domain.Item{
		Name:        name,
		Description: "test item",
		Price:       p,
		Image:       "https://img.example.com/" + name + ".png",
		Stock:       domain.StockIn,
		Weight:      1.5,
		CategoryID:  cat.ID,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed item %s: %v", name, err)
	}
	return &item
}
