package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lbrrrrrr/enjoyyoga/internal/models"
)

func TestValidateMasterToken(t *testing.T) {
	svc := NewTokenService("master-secret", "jwt-secret", time.Hour)

	assert.True(t, svc.ValidateMasterToken("master-secret"))
	assert.False(t, svc.ValidateMasterToken("wrong"))
	assert.False(t, svc.ValidateMasterToken(""))

	// A blank master token never matches, even against blank input.
	blank := NewTokenService("", "jwt-secret", time.Hour)
	assert.False(t, blank.ValidateMasterToken(""))
}

func TestJWTRoundTrip(t *testing.T) {
	svc := NewTokenService("", "jwt-secret", time.Hour)
	user := &models.AdminUser{Username: "front-desk", Access: models.AccessLevelStaff}

	tokenString, expiresAt, err := svc.CreateJWTToken(user)
	require.NoError(t, err)
	assert.NotEmpty(t, tokenString)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := svc.ValidateJWTToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "front-desk", claims.Sub)
	assert.Equal(t, models.AccessLevelStaff, claims.Access)
}

func TestValidateJWTTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenService("", "secret-a", time.Hour)
	verifier := NewTokenService("", "secret-b", time.Hour)

	tokenString, _, err := issuer.CreateJWTToken(&models.AdminUser{Username: "owner", Access: models.AccessLevelAdmin})
	require.NoError(t, err)

	_, err = verifier.ValidateJWTToken(tokenString)
	assert.Error(t, err)
}

func TestValidateJWTTokenRejectsGarbage(t *testing.T) {
	svc := NewTokenService("", "jwt-secret", time.Hour)

	_, err := svc.ValidateJWTToken("not.a.token")
	assert.Error(t, err)
}
