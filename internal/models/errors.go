package models

import "errors"

// Sentinel errors for the storefront domain. Services wrap these with
// fmt.Errorf("...: %w", ...) so handlers can map them to HTTP statuses
// with errors.Is.
var (
	// ErrNotFound means a referenced user, product, category, cart item
	// or order does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientStock means a requested quantity exceeds the
	// product's available stock at validation time.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrConflict means a uniqueness rule was violated (duplicate
	// username, email, category name) or a delete is blocked by
	// referencing rows.
	ErrConflict = errors.New("conflict")

	// ErrValidation means the input was malformed before any
	// persistence was attempted.
	ErrValidation = errors.New("validation failed")
)
