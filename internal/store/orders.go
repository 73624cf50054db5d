package store

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storefront/internal/domain"
)

// OrderStore handles Order rows
type OrderStore struct{ DB *gorm.DB }

func NewOrderStore(db *gorm.DB) *OrderStore { return &OrderStore{DB: db} }

// PlaceOrder converts the user's cart into an order in one transaction: the
// order row is written with a point-in-time copy of every cart line, and the
// cart rows are deleted. Calling it again with a session id that already
// produced an order returns that order untouched, so a double confirmation
// cannot charge a second time. A session resolves only to its own buyer:
// presenting a session that already paid for another user's order is
// ErrConflict, never that user's order.
func (s *OrderStore) PlaceOrder(userID uint, sessionID string) (*domain.Order, error) {
	var order domain.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("payment_session = ?", sessionID).First(&order).Error
		if err == nil {
			if order.UserID != userID {
				return ErrConflict // The session belongs to another buyer
			}
			return nil // Already placed for this session
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var rows []domain.CartItem
		if err := tx.Where("user_id = ?", userID).Preload("Item").Order("id").Find(&rows).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return ErrEmptyCart
		}

		total := decimal.Zero
		lines := make([]domain.OrderLine, len(rows))
		for i, r := range rows {
			lines[i] = domain.OrderLine{
				Name:        r.Item.Name,
				Description: r.Item.Description,
				Price:       r.Item.Price,
				Quantity:    r.Quantity,
				Image:       r.Item.Image,
			}
			total = total.Add(r.Item.Price.Mul(decimal.NewFromInt(int64(r.Quantity))))
		}

		order = domain.Order{
			UserID:         userID,
			TotalAmount:    total,
			Lines:          lines,
			Status:         "Pending",
			PaymentSession: sessionID,
		}
		if err := tx.Create(&order).Error; err != nil {
			// A hit on the payment_session unique index means a concurrent
			// confirmation claimed the session first
			var count int64
			tx.Model(&domain.Order{}).Where("payment_session = ?", sessionID).Count(&count)
			if count > 0 {
				return ErrConflict // Rollback, cart stays intact
			}
			return err // Rollback, cart stays intact
		}
		if err := tx.Where("user_id = ?", userID).Delete(&domain.CartItem{}).Error; err != nil {
			return err // Rollback, order write is undone too
		}
		return nil // Commit
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ByUser lists the user's orders, newest first
func (s *OrderStore) ByUser(userID uint) ([]domain.Order, error) {
	var orders []domain.Order
	err := s.DB.Where("user_id = ?", userID).Order("id DESC").Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// ByID fetches one order, scoped to its owner
func (s *OrderStore) ByID(userID, orderID uint) (*domain.Order, error) {
	var order domain.Order
	err := s.DB.Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}
