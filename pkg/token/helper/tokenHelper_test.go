package helper

import (
	"crypto/rand"
	"crypto/rsa"
	"strings"
	"testing"
	"time"

	"github.com/evently-app/evently/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err, "failed to generate private key")
	user := &model.User{
		Email:    "email",
		Password: "pass",
	}

	token, err := GenerateAccessToken(user, key, 12)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestValidateAccessToken(t *testing.T) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err, "failed to generate private key")
	user := &model.User{
		Email:    "email",
		Password: "pass",
	}

	token, err := GenerateAccessToken(user, privateKey, 12)
	assert.NoError(t, err)

	claims, err := ValidateAccessToken(token, &privateKey.PublicKey)
	assert.NoError(t, err)
	assert.Equal(t, "email", claims.User.Email)
	assert.Empty(t, claims.User.Password, "password must not survive serialization")
}

func TestGenerateRefreshToken(t *testing.T) {
	user := &model.User{}
	user.ID = 1

	secretKey := "secret"
	expiration := 12
	signedStringPrefix := "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9."

	token, err := GenerateRefreshToken(user, secretKey, expiration)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token.SignedString, signedStringPrefix))
	assert.NotEmpty(t, token.TokenId)
	assert.InDelta(t, time.Duration(expiration)*time.Second, token.ExpiresIn, float64(time.Second))
}

func TestValidateRefreshToken(t *testing.T) {
	user := &model.User{}
	user.ID = 123

	secretKey := "secret"

	token, err := GenerateRefreshToken(user, secretKey, 12)
	require.NoError(t, err)

	claims, err := ValidateRefreshToken(token.SignedString, secretKey)
	require.NoError(t, err)
	assert.Equal(t, uint(123), claims.UserId)
	assert.Equal(t, token.TokenId, claims.ID)

	_, err = ValidateRefreshToken(token.SignedString, "wrong-secret")
	assert.Error(t, err)
}
