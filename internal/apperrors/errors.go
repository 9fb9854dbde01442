// Package apperrors holds the sentinel errors shared by services and
// handlers. Services wrap them with fmt.Errorf and %w to add detail (which
// product ran out of stock, which order was not found); handlers match with
// errors.Is to pick an HTTP status, so callers never string-compare messages.
package apperrors

import "errors"

var (
	// ErrValidation covers missing or malformed input, e.g. a cancellation
	// request without a reason.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyCart is returned when a checkout is attempted with no cart
	// lines. It is a validation failure as far as HTTP mapping goes.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInsufficientStock means a requested quantity exceeds a product's
	// available stock. Wrappers name the offending product.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidTransition means the requested status change is not legal
	// for the order's current status and acting role.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrUnauthorized means no authenticated actor was supplied.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden means the actor is authenticated but may not act on
	// this order or product.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means the referenced order, product, or cart line does
	// not exist.
	ErrNotFound = errors.New("not found")
)
