package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestNewAccessToken(t *testing.T) {
	tok, err := NewAccessToken("secret", "64f1b2c3d4e5f60718293a4b", "publisher", time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, tok.Token)

	parsed, err := jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	assert.NoError(t, err)
	assert.True(t, parsed.Valid)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "64f1b2c3d4e5f60718293a4b", claims["sub"])
	assert.Equal(t, "publisher", claims["role"])
}

func TestNewAccessTokenWrongSecret(t *testing.T) {
	tok, err := NewAccessToken("secret", "u1", "user", time.Hour)
	assert.NoError(t, err)

	_, err = jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("other"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	assert.Error(t, err)
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("123456", 4)
	assert.NoError(t, err)
	assert.NotEqual(t, "123456", hash)

	assert.True(t, VerifyPassword(hash, "123456"))
	assert.False(t, VerifyPassword(hash, "654321"))
}

func TestResetToken(t *testing.T) {
	raw, err := NewResetToken()
	assert.NoError(t, err)
	assert.Len(t, raw, 40) // 20 random bytes, hex encoded

	// Hashing is deterministic and never equals the raw value.
	assert.Equal(t, HashResetToken(raw), HashResetToken(raw))
	assert.NotEqual(t, raw, HashResetToken(raw))
	assert.Len(t, HashResetToken(raw), 64)

	other, err := NewResetToken()
	assert.NoError(t, err)
	assert.NotEqual(t, raw, other)
}
