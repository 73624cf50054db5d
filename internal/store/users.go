package store

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"storefront/internal/domain"
)

// UserStore handles User rows
type UserStore struct{ DB *gorm.DB }

func NewUserStore(db *gorm.DB) *UserStore { return &UserStore{DB: db} }

// Create inserts a new user. Username and email must both be free;
// either one taken yields ErrDuplicate.
func (s *UserStore) Create(user *domain.User) error {
	var count int64
	err := s.DB.Model(&domain.User{}).
		Where("username = ? OR email = ?", user.Username, user.Email).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicate
	}
	return s.DB.Create(user).Error
}

// ByUsername fetches a user by username
func (s *UserStore) ByUsername(username string) (*domain.User, error) {
	var user domain.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ByID fetches a user by primary key
func (s *UserStore) ByID(id uint) (*domain.User, error) {
	var user domain.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// RecordLogin stamps last_login on a successful credential check
func (s *UserStore) RecordLogin(id uint) error {
	now := time.Now()
	return s.DB.Model(&domain.User{}).Where("id = ?", id).
		Update("last_login", &now).Error
}

// DeleteAccount removes a user together with their cart rows in one transaction.
// Orders stay behind as purchase history.
func (s *UserStore) DeleteAccount(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&domain.CartItem{}).Error; err != nil {
			return err // Rollback
		}
		res := tx.Delete(&domain.User{}, id)
		if res.Error != nil {
			return res.Error // Rollback
		}
		if res.RowsAffected == 0 {
			return ErrNotFound // Rollback
		}
		return nil // Commit
	})
}
