package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks checkout input rejected before any network call.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyCart indicates a checkout attempted against an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
)
