package domain

// Category Model
type Category struct {
	ID    uint   `gorm:"primaryKey"`      // Primary key
	Name  string `gorm:"unique;not null"` // Unique category name
	Items []Item // Items filed under this category
}
