package api

import (
	"errors"   // Sentinel error checks
	"net/http" // HTTP status codes

	"storefront/internal/store" // Repository sentinel errors
)

// storeStatus maps repository sentinel errors onto HTTP status codes
func storeStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound // Missing or not-owned record
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict // Duplicate username/email/name
	case errors.Is(err, store.ErrConflict):
		return http.StatusConflict // Payment session already claimed by another order
	case errors.Is(err, store.ErrCategoryInUse):
		return http.StatusConflict // Category still referenced by items
	case errors.Is(err, store.ErrOutOfStock):
		return http.StatusConflict // Item cannot be added to a cart
	case errors.Is(err, store.ErrEmptyCart):
		return http.StatusBadRequest // Nothing to check out
	default:
		return http.StatusInternalServerError // Anything unexpected
	}
}
