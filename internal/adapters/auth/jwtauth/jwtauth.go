package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"petplus/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL es fijo: no hay refresh; al expirar hay que volver a loguearse.
const TokenTTL = 24 * time.Hour

var (
	ErrSecretRequired = errors.New("jwt secret required")
)

type tokenClaims struct {
	auth.Claims
	jwt.RegisteredClaims
}

// Manager firma y verifica tokens HS256. Implementa auth.TokenIssuer y auth.AuthVerifier.
type Manager struct {
	secret []byte
	now    func() time.Time
}

func NewManager(secret string) (*Manager, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, ErrSecretRequired
	}
	return &Manager{
		secret: []byte(secret),
		now:    time.Now,
	}, nil
}

func (m *Manager) Issue(c auth.Claims) (string, error) {
	if strings.TrimSpace(c.UserID) == "" {
		return "", errors.New("jwt: user id required")
	}

	now := m.now()
	claims := tokenClaims{
		Claims: c,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("jwt: sign: %w", err)
	}
	return signed, nil
}

func (m *Manager) Verify(_ context.Context, raw string) (auth.Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return auth.Claims{}, auth.ErrInvalidToken
	}

	var claims tokenClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return auth.Claims{}, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}

	if strings.TrimSpace(claims.UserID) == "" {
		return auth.Claims{}, auth.ErrInvalidToken
	}
	return claims.Claims, nil
}
