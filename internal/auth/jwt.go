// Package auth verifies the bearer tokens issued by the external
// identity provider. The backend never issues credentials itself; it
// only checks the signature and lifts the subject, email and realm
// roles out of the claims.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("authorization token required")
)

// RealmAccess mirrors the provider's realm role claim.
type RealmAccess struct {
	Roles []string `json:"roles"`
}

// Claims is the subset of the provider's token this backend consumes.
// The subject claim is the opaque user id every ownership check runs on.
type Claims struct {
	Email       string      `json:"email"`
	RealmAccess RealmAccess `json:"realm_access"`
	jwt.RegisteredClaims
}

// UserID returns the provider's subject claim.
func (c *Claims) UserID() string {
	return c.Subject
}

// HasRole reports whether the token carries the given realm role.
func (c *Claims) HasRole(role string) bool {
	for _, r := range c.RealmAccess.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Verifier validates HS256 tokens against the shared secret configured
// on the identity provider.
type Verifier struct {
	secretKey []byte
}

// NewVerifier creates a Verifier for the given shared secret.
func NewVerifier(secretKey string) *Verifier {
	return &Verifier{secretKey: []byte(secretKey)}
}

// Verify parses and validates a token, returning the claims if valid.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			// Verify the signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return v.secretKey, nil
		},
	)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Sign creates a token the Verifier accepts. Production tokens come
// from the identity provider; this exists for tests and local tooling.
func (v *Verifier) Sign(userID, email string, roles []string, ttl time.Duration) (string, error) {
	claims := &Claims{
		Email:       email,
		RealmAccess: RealmAccess{Roles: roles},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(v.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}
