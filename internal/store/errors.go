package store

import "errors"

// Sentinel errors returned by the stores. Handlers map these onto HTTP statuses.
var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicate     = errors.New("record already exists")
	ErrConflict      = errors.New("payment session already used")
	ErrCategoryInUse = errors.New("category still has items")
	ErrEmptyCart     = errors.New("cart is empty")
	ErrOutOfStock    = errors.New("item is out of stock")
)
