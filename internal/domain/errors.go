package domain

import "errors"

var (
	// Identity errors
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotAuthenticated   = errors.New("please login to continue")
	ErrUserNotFound       = errors.New("user not found")

	// Booking errors
	ErrBookingNotFound   = errors.New("booking not found")
	ErrEmptyBooking      = errors.New("booking must contain at least one item")
	ErrInvalidStatus     = errors.New("invalid booking status")
	ErrInvalidTransition = errors.New("booking status transition not allowed")

	// Cart and checkout errors
	ErrEmptyCart     = errors.New("cart is empty")
	ErrPaymentFailed = errors.New("payment failed. Please try again")

	ErrInvalidInput = errors.New("invalid input")
)
