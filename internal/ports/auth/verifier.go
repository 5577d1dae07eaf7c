package auth

import (
	"context"
	"errors"
)

// ErrInvalidToken cubre token ausente, mal firmado o expirado; el guard no distingue.
var ErrInvalidToken = errors.New("invalid token")

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer firma un token para una identidad ya validada.
type TokenIssuer interface {
	Issue(claims Claims) (string, error)
}
