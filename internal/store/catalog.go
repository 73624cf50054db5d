package store

import (
	"errors"

	"gorm.io/gorm"

	"storefront/internal/domain"
)

// CatalogStore handles Item and Category rows
type CatalogStore struct{ DB *gorm.DB }

func NewCatalogStore(db *gorm.DB) *CatalogStore { return &CatalogStore{DB: db} }

// Items lists all items, optionally restricted to one category (categoryID > 0)
func (s *CatalogStore) Items(categoryID uint) ([]domain.Item, error) {
	var items []domain.Item
	q := s.DB.Order("id")
	if categoryID > 0 {
		q = q.Where("category_id = ?", categoryID)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ItemByID fetches one item
func (s *CatalogStore) ItemByID(id uint) (*domain.Item, error) {
	var item domain.Item
	if err := s.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// CreateItem inserts a new item; the name must be free
func (s *CatalogStore) CreateItem(item *domain.Item) error {
	var count int64
	if err := s.DB.Model(&domain.Item{}).Where("name = ?", item.Name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicate
	}
	return s.DB.Create(item).Error
}

// UpdateItem saves all columns of an existing item
func (s *CatalogStore) UpdateItem(item *domain.Item) error {
	var count int64
	if err := s.DB.Model(&domain.Item{}).Where("id = ?", item.ID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	// RowsAffected is useless here: a no-op update also reports zero rows
	return s.DB.Model(&domain.Item{}).Where("id = ?", item.ID).
		Select("Name", "Description", "Price", "Image", "Stock", "Weight", "CategoryID").
		Updates(item).Error
}

// DeleteItem removes an item and any cart rows still pointing at it
func (s *CatalogStore) DeleteItem(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", id).Delete(&domain.CartItem{}).Error; err != nil {
			return err // Rollback
		}
		res := tx.Delete(&domain.Item{}, id)
		if res.Error != nil {
			return res.Error // Rollback
		}
		if res.RowsAffected == 0 {
			return ErrNotFound // Rollback
		}
		return nil // Commit
	})
}

// Categories lists all categories
func (s *CatalogStore) Categories() ([]domain.Category, error) {
	var cats []domain.Category
	if err := s.DB.Order("name").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

// CreateCategory inserts a new category; the name must be free
func (s *CatalogStore) CreateCategory(name string) (*domain.Category, error) {
	var count int64
	if err := s.DB.Model(&domain.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicate
	}
	cat := domain.Category{Name: name}
	if err := s.DB.Create(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

// DeleteCategory removes an empty category. While any item still references
// the category the delete fails with ErrCategoryInUse and nothing changes.
func (s *CatalogStore) DeleteCategory(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Item{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
			return err // Rollback
		}
		if count > 0 {
			return ErrCategoryInUse // Rollback
		}
		res := tx.Delete(&domain.Category{}, id)
		if res.Error != nil {
			return res.Error // Rollback
		}
		if res.RowsAffected == 0 {
			return ErrNotFound // Rollback
		}
		return nil // Commit
	})
}
