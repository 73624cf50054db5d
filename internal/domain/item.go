package domain

import "github.com/shopspring/decimal"

// Stock state of an item
type StockState string

const (
	StockIn  StockState = "in_stock"     // Item can be purchased
	StockOut StockState = "out_of_stock" // Item is listed but not purchasable
)

// Item Model
type Item struct {
	ID          uint            `gorm:"primaryKey"`               // Primary key
	Name        string          `gorm:"unique;not null"`          // Unique item name
	Description string          `gorm:"size:200"`                 // Short description
	Price       decimal.Decimal `gorm:"type:decimal(10,2)"`       // Unit price
	Image       string          `gorm:"size:200"`                 // Image URL
	Stock       StockState      `gorm:"size:20;default:in_stock"` // Stock state
	Weight      float64         // Shipping weight
	CategoryID  uint            `gorm:"index"` // Foreign key to Category
}
