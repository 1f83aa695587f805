package tests

import (
	"testing"
	"time"

	"github.com/Davisit00/aviges/app/services"
	"github.com/Davisit00/aviges/models"
	"github.com/Davisit00/aviges/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-key-with-enough-length-for-hs256"

func TestTokenService(t *testing.T) {
	issuedAt := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	service := services.NewTokenService(testJWTSecret, utils.FixedClock{Time: issuedAt})

	t.Run("GeneratedTokensCarryClaims", func(t *testing.T) {
		access, refresh, err := service.GenerateTokens(42, "operator1", models.RoleOperator)
		require.NoError(t, err)
		require.NotEmpty(t, access)
		require.NotEmpty(t, refresh)
		assert.NotEqual(t, access, refresh)

		claims, err := service.ValidateAccessToken(access)
		require.NoError(t, err)
		assert.Equal(t, uint(42), claims.UserID)
		assert.Equal(t, "operator1", claims.Username)
		assert.Equal(t, models.RoleOperator, claims.Role)
		assert.Equal(t, services.TokenTypeAccess, claims.TokenType)
		assert.NotEmpty(t, claims.ID)

		refreshClaims, err := service.ValidateRefreshToken(refresh)
		require.NoError(t, err)
		assert.Equal(t, services.TokenTypeRefresh, refreshClaims.TokenType)
		assert.NotEqual(t, claims.ID, refreshClaims.ID)
	})

	t.Run("TokenTypesAreNotInterchangeable", func(t *testing.T) {
		access, refresh, err := service.GenerateTokens(42, "operator1", models.RoleOperator)
		require.NoError(t, err)

		_, err = service.ValidateAccessToken(refresh)
		assert.ErrorIs(t, err, services.ErrWrongTokenType)

		_, err = service.ValidateRefreshToken(access)
		assert.ErrorIs(t, err, services.ErrWrongTokenType)
	})

	t.Run("ExpiredAccessTokenRejected", func(t *testing.T) {
		access, refresh, err := service.GenerateTokens(42, "operator1", models.RoleOperator)
		require.NoError(t, err)

		later := services.NewTokenService(testJWTSecret, utils.FixedClock{
			Time: issuedAt.Add(utils.AccessTokenTTL + time.Minute),
		})

		_, err = later.ValidateAccessToken(access)
		assert.ErrorIs(t, err, services.ErrTokenExpired)

		// The refresh token outlives the access token.
		_, err = later.ValidateRefreshToken(refresh)
		assert.NoError(t, err)
	})

	t.Run("ExpiredRefreshTokenRejected", func(t *testing.T) {
		_, refresh, err := service.GenerateTokens(42, "operator1", models.RoleOperator)
		require.NoError(t, err)

		later := services.NewTokenService(testJWTSecret, utils.FixedClock{
			Time: issuedAt.Add(utils.RefreshTokenTTL + time.Minute),
		})

		_, err = later.ValidateRefreshToken(refresh)
		assert.ErrorIs(t, err, services.ErrTokenExpired)
	})

	t.Run("TamperedSecretRejected", func(t *testing.T) {
		access, _, err := service.GenerateTokens(42, "operator1", models.RoleOperator)
		require.NoError(t, err)

		other := services.NewTokenService("another-secret-key-with-enough-length", utils.FixedClock{Time: issuedAt})
		_, err = other.ValidateAccessToken(access)
		assert.ErrorIs(t, err, services.ErrInvalidToken)
	})

	t.Run("GarbageTokenRejected", func(t *testing.T) {
		_, err := service.ValidateAccessToken("not-a-jwt")
		assert.ErrorIs(t, err, services.ErrInvalidToken)
	})
}
