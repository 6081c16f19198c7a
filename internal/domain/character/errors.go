package character

import "errors"

// Sentinel causes for rejected transitions. They are returned wrapped in a
// validation error, so check them with errors.Is.
var (
	ErrAttunementLimit    = errors.New("attunement limit reached")
	ErrInsufficientPoints = errors.New("insufficient build points")
	ErrRefundExceedsSpent = errors.New("refund exceeds spent build points")
	ErrResourceBelowZero  = errors.New("resource would drop below zero")
	ErrOutOfStock         = errors.New("item quantity exhausted")
	ErrInsufficientGold   = errors.New("insufficient gold")
	ErrNonPositiveAmount  = errors.New("amount must be positive")
	ErrNegativeAmount     = errors.New("amount must not be negative")
)
