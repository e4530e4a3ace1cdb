package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndValidateToken(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateToken(userID, "Ana", "a@x.com", testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "Ana", claims.Name)
	assert.Equal(t, "a@x.com", claims.Email)

	identity := claims.Identity()
	assert.Equal(t, userID, identity.UserID)
	assert.Equal(t, "Ana", identity.Name)
	assert.Equal(t, "a@x.com", identity.Email)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "Ana", "a@x.com", testSecret)
	require.NoError(t, err)

	_, err = ValidateToken(token, "another-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	claims := Claims{
		UserID: uuid.New(),
		Name:   "Ana",
		Email:  "a@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-9 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ValidateToken(token, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongSigningMethod(t *testing.T) {
	// alg=none tokens must never validate
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: uuid.New()}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateToken(token, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not-a-token", testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenTTL(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "Ana", "a@x.com", testSecret)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)

	ttl := time.Until(claims.ExpiresAt.Time)
	assert.InDelta(t, TokenTTL.Seconds(), ttl.Seconds(), 5)
}
