// Package identity turns a bearer token into a stable subject. The subject
// is stored as users.user_uuid.
package identity

import (
	"context"
	"errors"
)

var ErrInvalidToken = errors.New("invalid token")

type Identity struct {
	Subject string
	Email   string
	Name    string
}

type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*Identity, error)
}
