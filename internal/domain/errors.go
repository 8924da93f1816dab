package domain

import "errors"

var (
	ErrItemNotFound     = errors.New("item not found")
	ErrMemberNotFound   = errors.New("member not found")
	ErrItemNotAvailable = errors.New("item not available")
	ErrRentalNotFound   = errors.New("rental not found")
	ErrRentalNotActive  = errors.New("rental is not active")

	ErrInvalidDuration = errors.New("duration must be at least 1")
	ErrInvalidUnit     = errors.New("unknown rental unit")
	ErrUnknownTier     = errors.New("unknown membership tier")
	ErrInvalidItem     = errors.New("invalid item")
	ErrInvalidMember   = errors.New("invalid member")

	ErrEmptyCart        = errors.New("cart is empty")
	ErrLineNotFound     = errors.New("cart line not found")
	ErrDuplicateLine    = errors.New("item already in cart")
	ErrCheckoutDeclined = errors.New("checkout declined by operator")

	ErrMemberHasActiveRentals = errors.New("member has active rentals")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = errors.New("password must be at least 4 characters")
	ErrOperatorExists     = errors.New("operator already exists")
)
