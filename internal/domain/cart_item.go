package domain

// CartItem Model
type CartItem struct {
	ID       uint `gorm:"primaryKey"`        // Primary key
	UserID   uint `gorm:"index"`             // Foreign key to the owning User
	ItemID   uint `gorm:"index"`             // Foreign key to the Item
	Quantity int  `gorm:"default:1"`         // Quantity, always >= 1 (0 deletes the row)
	Item     Item `gorm:"foreignKey:ItemID"` // Item referenced by this row
}
