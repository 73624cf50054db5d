package domain

import "time"

// User Model
type User struct {
	ID           uint       `gorm:"primaryKey"`      // Primary key
	Username     string     `gorm:"unique;not null"` // Unique username
	Email        string     `gorm:"unique;not null"` // Unique email address
	PasswordHash string     `gorm:"not null"`        // Bcrypt password hash
	IsAdmin      bool       `gorm:"default:false"`   // Admin flag, decided once at registration
	LastLogin    *time.Time // Timestamp of the last successful login
	CartItems    []CartItem `gorm:"constraint:OnDelete:CASCADE;"` // Cart rows owned by this user
	Orders       []Order    // Orders placed by this user
}
