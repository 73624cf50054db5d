package store

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

func TestAddMergesDuplicateRows(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartStore(db)
	userID := seedUser(t, db, "alice")
	item := seedItem(t, db, "mug", "12.50")

	first, err := carts.Add(userID, item.ID)
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	if first.Quantity != 1 {
		t.Errorf("first add quantity = %d, want 1", first.Quantity)
	}

	second, err := carts.Add(userID, item.ID)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if second.Quantity != 2 {
		t.Errorf("second add quantity = %d, want 2", second.Quantity)
	}

	// Still one row, not two
	var count int64
	db.Model(&domain.CartItem{}).Where("user_id = ?", userID).Count(&count)
	if count != 1 {
		t.Errorf("cart rows = %d, want 1", count)
	}
}

func TestAddMissingItem(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartStore(db)
	userID := seedUser(t, db, "alice")

	if _, err := carts.Add(userID, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("add missing item err = %v, want ErrNotFound", err)
	}
}

func TestAddOutOfStockItem(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartStore(db)
	userID := seedUser(t, db, "alice")
	item := seedItem(t, db, "rare-vase", "99.00")
	if err := db.Model(item).Update("stock", domain.StockOut).Error; err != nil {
		t.Fatalf("mark out of stock: %v", err)
	}

	if _, err := carts.Add(userID, item.ID); !errors.Is(err, ErrOutOfStock) {
		t.Errorf("add out-of-stock err = %v, want ErrOutOfStock", err)
	}
}

func TestChangeQuantity(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartStore(db)
	userID := seedUser(t, db, "alice")
	item := seedItem(t, db, "mug", "12.50")

	row, err := carts.Add(userID, item.ID)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := carts.Add(userID, item.ID); err != nil {
		t.Fatalf("add again: %v", err)
	}

	// Decrementing a quantity-2 row leaves quantity 1
	updated, removed, err := carts.ChangeQuantity(userID, row.ID, -1)
	if err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if removed {
		t.Fatal("quantity-2 row was removed on decrement")
	}
	if updated.Quantity != 1 {
		t.Errorf("quantity after decrement = %d, want 1", updated.Quantity)
	}

	// Decrementing a quantity-1 row removes it instead of keeping zero
	_, removed, err = carts.ChangeQuantity(userID, row.ID, -1)
	if err != nil {
		t.Fatalf("final decrement: %v", err)
	}
	if !removed {
		t.Error("quantity-1 row was not removed on decrement")
	}
	var count int64
	db.Model(&domain.CartItem{}).Where("user_id = ?", userID).Count(&count)
	if count != 0 {
		t.Errorf("cart rows after removal = %d, want 0", count)
	}
}

func TestCartOwnership(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartStore(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	item := seedItem(t, db, "mug", "12.50")

	row, err := carts.Add(alice, item.ID)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	// Bob cannot touch Alice's row through any mutation
	if _, _, err := carts.ChangeQuantity(bob, row.ID, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign ChangeQuantity err = %v, want ErrNotFound", err)
	}
	if err := carts.Remove(bob, row.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign Remove err = %v, want ErrNotFound", err)
	}

	// The row is untouched
	var got domain.CartItem
	if err := db.First(&got, row.ID).Error; err != nil {
		t.Fatalf("row vanished: %v", err)
	}
	if got.Quantity != 1 {
		t.Errorf("quantity after foreign mutations = %d, want 1", got.Quantity)
	}
}

func TestSubtotal(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartStore(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	mug := seedItem(t, db, "mug", "12.50")
	lamp := seedItem(t, db, "lamp", "40.00")

	// Alice: 2 mugs + 1 lamp; Bob: 1 lamp that must not leak into Alice's total
	if _, err := carts.Add(alice, mug.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := carts.Add(alice, mug.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := carts.Add(alice, lamp.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := carts.Add(bob, lamp.ID); err != nil {
		t.Fatalf("add: %v", err)
	}

	subtotal, err := carts.Subtotal(alice)
	if err != nil {
		t.Fatalf("subtotal: %v", err)
	}
	if want := decimal.RequireFromString("65.00"); !subtotal.Equal(want) {
		t.Errorf("subtotal = %s, want %s", subtotal.String(), want.String())
	}

	empty := seedUser(t, db, "carol")
	subtotal, err = carts.Subtotal(empty)
	if err != nil {
		t.Fatalf("empty subtotal: %v", err)
	}
	if !subtotal.IsZero() {
		t.Errorf("empty cart subtotal = %s, want 0", subtotal.String())
	}
}
