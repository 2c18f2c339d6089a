package services

import (
	"errors"
	"fmt"

	"github.com/alexandru1c/refeelv2/pkg/cart"
	"github.com/alexandru1c/refeelv2/repository"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
	ErrRestaurantMismatch = errors.New("cart has another restaurant")
	ErrProductNotFound    = errors.New("product not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidQuantity    = cart.ErrInvalidQuantity
	ErrInvalidTotal       = errors.New("cart total is out of range")

	// same value the store returns when the conditional decrement loses
	ErrInsufficientBalance = repository.ErrInsufficientBalance
)

// TransientIOError wraps any data store failure. Nothing is retried; the
// cart is left as it was.
type TransientIOError struct {
	Op  string
	Err error
}

func (e *TransientIOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransientIOError) Unwrap() error { return e.Err }

func transient(op string, err error) error {
	return &TransientIOError{Op: op, Err: err}
}
