package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTTL bounds the lifetime of every issued session token. Expiry is the
// only lifetime bound; there is no revocation list.
const TokenTTL = 8 * time.Hour

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims represents the payload embedded in the JWT session token
type Claims struct {
	UserID uuid.UUID `json:"userId"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}

// Identity is the resolved acting user carried through the request context
type Identity struct {
	UserID uuid.UUID
	Name   string
	Email  string
}

// GenerateToken signs an HS256 session token for the given user
func GenerateToken(userID uuid.UUID, name, email, secret string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Name:   name,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken verifies the token signature and expiry and returns the claims
func ValidateToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// Identity converts validated claims into the canonical request identity
func (c *Claims) Identity() Identity {
	return Identity{UserID: c.UserID, Name: c.Name, Email: c.Email}
}
