package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"newsletterplatform/internal/domain"
)

// TokenTTL is the fixed lifetime of an admin token.
const TokenTTL = 240 * time.Hour

type jwtClaims struct {
	jwt.RegisteredClaims
	AdminID int64  `json:"id"`
	Email   string `json:"email"`
}

// JWTManager issues and verifies HS256-signed admin tokens carrying
// {id, email} claims. It implements domain.TokenIssuer and
// domain.TokenVerifier.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTManager returns a JWTManager signing with the given secret.
// A ttl of 0 falls back to TokenTTL.
func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	if ttl == 0 {
		ttl = TokenTTL
	}
	return &JWTManager{secret: []byte(secret), ttl: ttl}
}

func (m *JWTManager) Issue(id int64, email string) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		AdminID: id,
		Email:   email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify parses and validates a token. Signature mismatch and expiry both
// return domain.ErrInvalidToken; callers do not distinguish them.
func (m *JWTManager) Verify(tokenString string) (domain.Identity, error) {
	var claims jwtClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return domain.Identity{}, domain.ErrInvalidToken
	}
	return domain.Identity{ID: claims.AdminID, Email: claims.Email}, nil
}
