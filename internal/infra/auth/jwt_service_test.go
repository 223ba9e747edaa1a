package auth

import (
	"testing"
	"time"

	"ridehail/config"
	"ridehail/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = secret

	return cfg
}

func testUser() *entity.User {
	return &entity.User{ID: "user-1", Email: "a@x.com", Role: entity.RoleDriver}
}

func TestJWTService_GenerateAndValidateToken(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig("test_access_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	token, err := jwtService.GenerateToken(testUser())
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, entity.RoleDriver, claims.Role)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig("test_access_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	claims, err := jwtService.ValidateToken("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.Contains(t, err.Error(), "failed to parse token")
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuer, err := NewJWTService(newTestConfig("issuer_secret_key_very_long_for_testing"))
	require.NoError(t, err)
	verifier, err := NewJWTService(newTestConfig("another_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	token, err := issuer.GenerateToken(testUser())
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc, err := NewJWTService(newTestConfig("test_access_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	jwtSvc := svc.(*jwtService)
	jwtSvc.now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }
	token, err := jwtSvc.GenerateToken(testUser())
	require.NoError(t, err)

	jwtSvc.now = time.Now
	_, err = jwtSvc.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTService_RejectsNoneAlgorithm(t *testing.T) {
	svc, err := NewJWTService(newTestConfig("test_access_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "user-1",
		"iss": tokenIssuer,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestJWTService_EmptySecret(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig(""))
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt secret must be provided")
}

func TestJWTService_TokenTTLFromConfig(t *testing.T) {
	cfg := newTestConfig("test_access_secret_key_very_long_for_testing")
	cfg.Auth = &config.AuthConfig{TokenTTL: time.Hour}

	jwtService, err := NewJWTService(cfg)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, jwtService.TokenTTL())
}

func TestJWTService_GenerateTokenRequiresUserID(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig("test_access_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	_, err = jwtService.GenerateToken(&entity.User{Email: "a@x.com"})
	assert.Error(t, err)
}
