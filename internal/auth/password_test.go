package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_CheckPasswordHash(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{name: "matching password", password: "correct horse", want: true},
		{name: "wrong password", password: "battery staple"},
		{name: "empty password", password: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := CheckPasswordHash(tt.password, hash)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestHashPassword_ClampsCost(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("pw", 1)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestCheckPasswordHash_AcceptsAnyCostAndVariant(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost+1)
	require.NoError(t, err)

	// Hashes written by other bcrypt implementations use the $2y$ prefix.
	variant := strings.Replace(string(hash), "$2a$", "$2y$", 1)

	ok, err := CheckPasswordHash("pw", variant)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckPasswordHash_MalformedHash(t *testing.T) {
	t.Parallel()

	ok, err := CheckPasswordHash("pw", "not-a-hash")
	assert.False(t, ok)
	assert.Error(t, err)
}
