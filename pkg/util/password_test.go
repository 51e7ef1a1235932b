package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret-password")
	require.NoError(t, err)

	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "secret-password", hash)
}

func TestVerifyPassword_Success(t *testing.T) {
	hash, err := HashPassword("secret-password")
	require.NoError(t, err)

	assert.True(t, VerifyPassword(hash, "secret-password"))
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("secret-password")
	require.NoError(t, err)

	assert.False(t, VerifyPassword(hash, "wrong-password"))
}
