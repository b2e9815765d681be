package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivekvardhan78/JalRakshak/internal/infrastructure/config"
)

func newTestJWTService() InterfaceJWTService {
	return NewJWTService(&config.Config{JWTSecretKey: "test-secret"}, nil)
}

func TestGenerateAndValidateToken(t *testing.T) {
	s := newTestJWTService()

	token, err := s.GenerateToken(42, "staff")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
}

func TestExtractClaims(t *testing.T) {
	s := newTestJWTService()

	token, err := s.GenerateToken(7, "admin")
	require.NoError(t, err)

	claims, err := s.ExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "jalrakshak", claims.Issuer)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	s := newTestJWTService()
	other := NewJWTService(&config.Config{JWTSecretKey: "different-secret"}, nil)

	token, err := s.GenerateToken(1, "citizen")
	require.NoError(t, err)

	_, err = other.ExtractClaims(token)
	assert.Error(t, err)
}

func TestValidateGarbageToken(t *testing.T) {
	s := newTestJWTService()

	_, err := s.ExtractClaims("not.a.token")
	assert.Error(t, err)
}
