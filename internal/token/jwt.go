package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the authenticated user's identity.
type Claims struct {
	jwt.RegisteredClaims
	UserID uint64 `json:"user_id"`
}

// JWT issues and verifies bearer tokens backed by symmetric HMAC.
type JWT struct {
	secret []byte
	ttl    time.Duration
}

// NewJWT creates a token manager with the provided secret and token lifetime.
func NewJWT(secret string, ttl time.Duration) *JWT {
	return &JWT{secret: []byte(secret), ttl: ttl}
}

// Generate issues a signed token for the given user.
func (j *JWT) Generate(userID uint64) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		UserID: userID,
	})

	signed, err := tok.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify validates a token string and extracts the user ID.
func (j *JWT) Verify(tokenString string) (uint64, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to parse token: %w", err)
	}
	if !tok.Valid {
		return 0, fmt.Errorf("token is invalid")
	}
	return claims.UserID, nil
}
