package middleware

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "altscore/pkg/domain"
)

func signToken(t *testing.T, key string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(key))
	require.NoError(t, err)
	return signed
}

func TestHS256Validator(t *testing.T) {
	const key = "test-signing-key"
	validator := NewHS256Validator(key)
	userID := id.NewUserID()

	t.Run("valid token yields user id", func(t *testing.T) {
		signed := signToken(t, key, jwt.MapClaims{
			"sub": userID.String(),
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		claims, err := validator.ValidateToken(signed)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
	})

	t.Run("wrong key rejected", func(t *testing.T) {
		signed := signToken(t, "other-key", jwt.MapClaims{
			"sub": userID.String(),
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		_, err := validator.ValidateToken(signed)
		assert.Error(t, err)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		signed := signToken(t, key, jwt.MapClaims{
			"sub": userID.String(),
			"exp": time.Now().Add(-time.Minute).Unix(),
		})

		_, err := validator.ValidateToken(signed)
		assert.Error(t, err)
	})

	t.Run("missing subject rejected", func(t *testing.T) {
		signed := signToken(t, key, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		_, err := validator.ValidateToken(signed)
		assert.Error(t, err)
	})

	t.Run("non-uuid subject rejected", func(t *testing.T) {
		signed := signToken(t, key, jwt.MapClaims{
			"sub": "alice",
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		_, err := validator.ValidateToken(signed)
		assert.Error(t, err)
	})
}
