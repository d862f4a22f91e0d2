package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_GenerateToken_Success(t *testing.T) {
	// Arrange
	jwtManager := NewJWTManager("test-secret-key", 24*time.Hour)

	// Act
	token, err := jwtManager.GenerateToken("admin")

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := jwtManager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTManager_ValidateToken_Expired(t *testing.T) {
	// Arrange - negative duration produces an already-expired token
	jwtManager := NewJWTManager("test-secret-key", -time.Minute)
	token, err := jwtManager.GenerateToken("admin")
	require.NoError(t, err)

	// Act
	claims, err := jwtManager.ValidateToken(token)

	// Assert
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Nil(t, claims)
}

func TestJWTManager_ValidateToken_WrongKey(t *testing.T) {
	// Arrange
	issuer := NewJWTManager("issuing-key", 24*time.Hour)
	verifier := NewJWTManager("different-key", 24*time.Hour)
	token, err := issuer.GenerateToken("admin")
	require.NoError(t, err)

	// Act
	claims, err := verifier.ValidateToken(token)

	// Assert
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestJWTManager_ValidateToken_Garbage(t *testing.T) {
	jwtManager := NewJWTManager("test-secret-key", 24*time.Hour)

	claims, err := jwtManager.ValidateToken("not.a.token")

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}
