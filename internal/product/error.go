package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidQuery    = errors.New("invalid query")
	ErrUnauthorized    = errors.New("unauthorized")
)
