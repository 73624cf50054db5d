package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine is one purchased line item, copied from the cart at checkout time.
// Later catalog edits never touch it.
type OrderLine struct {
	Name        string          `json:"name"`        // Item name at purchase time
	Description string          `json:"description"` // Item description at purchase time
	Price       decimal.Decimal `json:"price"`       // Unit price at purchase time
	Quantity    int             `json:"quantity"`    // Purchased quantity
	Image       string          `json:"image"`       // Image URL at purchase time
}

// Order Model
type Order struct {
	ID             uint            `gorm:"primaryKey"`                // Primary key
	UserID         uint            `gorm:"index"`                     // Foreign key to the buyer
	TotalAmount    decimal.Decimal `gorm:"type:decimal(10,2)"`        // Charged total
	Lines          []OrderLine     `gorm:"serializer:json;type:text"` // Snapshot of purchased lines, one text blob
	Status         string          `gorm:"size:20;default:Pending"`   // Free-text status, set once
	PaymentSession string          `gorm:"uniqueIndex;size:191"`      // Gateway session that paid for this order
	CreatedAt      time.Time       // Timestamp of checkout confirmation
}
