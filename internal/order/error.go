package order

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrEmptyCart         = errors.New("cart cannot be empty")
	ErrInvalidCart       = errors.New("invalid cart")
)
