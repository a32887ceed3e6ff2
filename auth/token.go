package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alfar-programer/Store-B-sub000/apperror"
	"github.com/alfar-programer/Store-B-sub000/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrTokenRevoked = errors.New("token revoked")

// Claims is what every issued token carries.
type Claims struct {
	UserID uint        `json:"id"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies HS256 tokens.
type TokenManager struct {
	secret  []byte
	ttl     time.Duration
	revoker Revoker
	now     func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration, revoker Revoker) *TokenManager {
	return &TokenManager{
		secret:  []byte(secret),
		ttl:     ttl,
		revoker: revoker,
		now:     time.Now,
	}
}

func (m *TokenManager) TTL() time.Duration { return m.ttl }

// Issue signs a token for u that expires after the configured TTL.
func (m *TokenManager) Issue(u *models.User) (string, *Claims, error) {
	now := m.now()
	claims := &Claims{
		UserID: u.ID,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprint(u.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims, nil
}

// Parse checks signature and expiry only.
func (m *TokenManager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if _, err := models.ParseRole(string(claims.Role)); err != nil {
		return nil, err
	}
	return claims, nil
}

// Verify is Parse plus the denylist lookup when a revoker is configured.
// A failed lookup is an internal error, not a bad token.
func (m *TokenManager) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := m.Parse(tokenString)
	if err != nil {
		return nil, err
	}
	if m.revoker != nil && claims.ID != "" {
		revoked, err := m.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, apperror.Internal("Failed to check token revocation", err)
		}
		if revoked {
			return nil, ErrTokenRevoked
		}
	}
	return claims, nil
}

// Revoke denylists the token until it would have expired anyway.
// Without a revoker it is a no-op and logout stays client-side.
func (m *TokenManager) Revoke(ctx context.Context, claims *Claims) error {
	if m.revoker == nil || claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	remaining := claims.ExpiresAt.Time.Sub(m.now())
	if remaining <= 0 {
		return nil
	}
	return m.revoker.Revoke(ctx, claims.ID, remaining)
}
