package equipment

import "errors"

var (
	// ErrNoCharges is returned when a charged item is used with zero charges left
	ErrNoCharges = errors.New("no charges remaining")

	// ErrNotCharged is returned when charge operations target an item without charges
	ErrNotCharged = errors.New("item does not hold charges")
)
