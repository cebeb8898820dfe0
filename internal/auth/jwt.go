// Package auth validates the bearer tokens issued by the building's resident
// portal. This service never registers users or issues long-lived
// credentials; it only checks signatures and extracts the caller identity.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/hyessol/fridgecheck-backend/internal/domain"
	"github.com/hyessol/fridgecheck-backend/pkg/ctxutil"
)

// TokenValidator verifies HS256 access tokens and maps their claims onto a
// caller identity.
type TokenValidator struct {
	secret []byte
	issuer string
}

// NewTokenValidator creates a new validator.
// secret must be at least 32 characters for HS256 security.
func NewTokenValidator(secret string, issuer string) *TokenValidator {
	return &TokenValidator{
		secret: []byte(secret),
		issuer: issuer,
	}
}

// accessClaims extends standard JWT claims with the user's role set.
type accessClaims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles,omitempty"`
}

// Validate parses and validates an access token.
// Unknown role names are dropped; a token with no recognized role still
// authenticates but carries an empty role set.
func (v *TokenValidator) Validate(tokenString string) (ctxutil.Identity, error) {
	if tokenString == "" {
		return ctxutil.Identity{}, fmt.Errorf("token is empty")
	}

	token, err := jwt.ParseWithClaims(tokenString, &accessClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return ctxutil.Identity{}, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return ctxutil.Identity{}, fmt.Errorf("invalid token claims")
	}

	if claims.Issuer != v.issuer {
		return ctxutil.Identity{}, fmt.Errorf("invalid issuer: expected %s, got %s", v.issuer, claims.Issuer)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctxutil.Identity{}, fmt.Errorf("invalid subject UUID: %w", err)
	}

	roles := make([]domain.Role, 0, len(claims.Roles))
	for _, name := range claims.Roles {
		role := domain.Role(name)
		if role.IsValid() {
			roles = append(roles, role)
		}
	}

	return ctxutil.Identity{UserID: userID, Roles: roles}, nil
}

// Mint creates a signed HS256 token for an identity. The portal is the
// production issuer; this path exists for tests and local tooling.
func (v *TokenValidator) Mint(identity ctxutil.Identity, ttl time.Duration) (string, error) {
	now := time.Now()

	roles := make([]string, len(identity.Roles))
	for i, role := range identity.Roles {
		roles[i] = string(role)
	}

	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID.String(),
			Issuer:    v.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Roles: roles,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}
