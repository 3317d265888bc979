package auth

import (
	"time"

	autherrors "go-hrms/internal/auth/errors"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer signs the HS256 access tokens AuthMiddleware verifies.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs user_id, role and exp plus any extra identity claims.
func (i *TokenIssuer) Issue(userID, role string, extra map[string]string) (string, time.Time, error) {
	expiresAt := i.now().Add(i.ttl)
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     expiresAt.Unix(),
	}
	for k, v := range extra {
		claims[k] = v
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, autherrors.ErrTokenGenerationFailed
	}
	return signed, expiresAt, nil
}
