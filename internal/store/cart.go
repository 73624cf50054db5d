package store

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storefront/internal/domain"
)

// CartStore handles CartItem rows. Every operation is scoped to the calling
// user; a row id belonging to somebody else behaves like a missing row.
type CartStore struct{ DB *gorm.DB }

func NewCartStore(db *gorm.DB) *CartStore { return &CartStore{DB: db} }

// Add puts one unit of an item into the user's cart. An existing row for the
// same (user, item) pair is incremented instead of duplicated.
func (s *CartStore) Add(userID, itemID uint) (*domain.CartItem, error) {
	var item domain.Item
	if err := s.DB.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if item.Stock == domain.StockOut {
		return nil, ErrOutOfStock
	}

	var row domain.CartItem
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND item_id = ?", userID, itemID).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = domain.CartItem{UserID: userID, ItemID: itemID, Quantity: 1}
			return tx.Create(&row).Error
		}
		if err != nil {
			return err
		}
		// Increment in SQL so two concurrent adds don't lose an update
		if err := tx.Model(&row).Update("quantity", gorm.Expr("quantity + ?", 1)).Error; err != nil {
			return err
		}
		return tx.First(&row, row.ID).Error
	})
	if err != nil {
		return nil, err
	}
	row.Item = item
	return &row, nil
}

// ChangeQuantity adjusts a cart row by delta. A decrement that would push the
// quantity below 1 deletes the row instead; removed reports that outcome.
func (s *CartStore) ChangeQuantity(userID, cartItemID uint, delta int) (row *domain.CartItem, removed bool, err error) {
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var r domain.CartItem
		e := tx.Where("id = ? AND user_id = ?", cartItemID, userID).First(&r).Error
		if errors.Is(e, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if e != nil {
			return e
		}
		if r.Quantity+delta < 1 {
			removed = true
			return tx.Delete(&r).Error
		}
		if e := tx.Model(&r).Update("quantity", gorm.Expr("quantity + ?", delta)).Error; e != nil {
			return e
		}
		if e := tx.Preload("Item").First(&r, r.ID).Error; e != nil {
			return e
		}
		row = &r
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return row, removed, nil
}

// Remove deletes a cart row outright
func (s *CartStore) Remove(userID, cartItemID uint) error {
	res := s.DB.Where("id = ? AND user_id = ?", cartItemID, userID).Delete(&domain.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Rows returns the user's cart rows with their items preloaded
func (s *CartStore) Rows(userID uint) ([]domain.CartItem, error) {
	var rows []domain.CartItem
	err := s.DB.Where("user_id = ?", userID).Preload("Item").Order("id").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Subtotal sums price x quantity over the user's cart rows
func (s *CartStore) Subtotal(userID uint) (decimal.Decimal, error) {
	rows, err := s.Rows(userID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Item.Price.Mul(decimal.NewFromInt(int64(r.Quantity))))
	}
	return total, nil
}
