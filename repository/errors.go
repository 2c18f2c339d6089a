package repository

import "errors"

// ErrInsufficientBalance is returned when the conditional coin decrement
// matches no row.
var ErrInsufficientBalance = errors.New("insufficient coin balance")
