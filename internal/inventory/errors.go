package inventory

import "errors"

var (
	// ErrProductNotFound signals that a product id did not resolve against
	// the cached product collection. No network call was made.
	ErrProductNotFound = errors.New("product not found")

	// ErrInsufficientStock signals that a sale asked for more units than
	// the cached product quantity. No network call was made.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidQuantity signals a zero or negative quantity.
	ErrInvalidQuantity = errors.New("quantity must be positive")
)
