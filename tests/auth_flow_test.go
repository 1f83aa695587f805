package tests

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Davisit00/aviges/app/dto"
	"github.com/Davisit00/aviges/app/services"
	businessflow "github.com/Davisit00/aviges/business_flow"
	"github.com/Davisit00/aviges/models"
	"github.com/Davisit00/aviges/repository"
	testingutil "github.com/Davisit00/aviges/testing"
	"github.com/Davisit00/aviges/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRevocationStore keeps revoked token IDs in a map so auth tests do not
// need a Redis instance.
type memoryRevocationStore struct {
	mu      sync.Mutex
	revoked map[string]struct{}
}

func newMemoryRevocationStore() *memoryRevocationStore {
	return &memoryRevocationStore{revoked: make(map[string]struct{})}
}

func (s *memoryRevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ttl > 0 {
		s.revoked[tokenID] = struct{}{}
	}
	return nil
}

func (s *memoryRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.revoked[tokenID]
	return ok, nil
}

func TestAuthFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		ctx := context.Background()
		clock := utils.FixedClock{Time: time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)}
		tokenService := services.NewTokenService(testJWTSecret, clock)
		store := newMemoryRevocationStore()
		flow := businessflow.NewAuthFlow(
			repository.NewUserRepository(testDB.DB),
			tokenService,
			store,
			clock,
		)
		fixtures := testingutil.NewTestFixtures(testDB)

		user, err := fixtures.CreateTestUser(models.RoleOperator)
		require.NoError(t, err)

		t.Run("LoginIssuesTokenPair", func(t *testing.T) {
			resp, err := flow.Login(ctx, &dto.LoginRequest{
				Username: user.Username,
				Password: "TestPass123!",
			}, nil)
			require.NoError(t, err)
			assert.Equal(t, user.ID, resp.User.ID)
			assert.Equal(t, models.RoleOperator, resp.User.Role)
			assert.Equal(t, "Bearer", resp.Tokens.TokenType)
			require.NotEmpty(t, resp.Tokens.AccessToken)
			require.NotEmpty(t, resp.Tokens.RefreshToken)

			claims, err := tokenService.ValidateAccessToken(resp.Tokens.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, user.ID, claims.UserID)
		})

		t.Run("WrongPasswordRejected", func(t *testing.T) {
			_, err := flow.Login(ctx, &dto.LoginRequest{
				Username: user.Username,
				Password: "WrongPass123!",
			}, nil)
			require.Error(t, err)
			assert.True(t, businessflow.IsValidationError(err))
			assert.True(t, businessflow.IsIncorrectPassword(err))
		})

		t.Run("UnknownUserGetsSameAnswerAsWrongPassword", func(t *testing.T) {
			unknown, err := flow.Login(ctx, &dto.LoginRequest{
				Username: "nobody",
				Password: "TestPass123!",
			}, nil)
			require.Error(t, err)
			assert.Nil(t, unknown)
			assert.True(t, businessflow.IsValidationError(err))
			assert.True(t, businessflow.IsIncorrectPassword(err))

			// Neither the classification nor the message betrays whether the
			// account exists.
			_, wrongPass := flow.Login(ctx, &dto.LoginRequest{
				Username: user.Username,
				Password: "WrongPass123!",
			}, nil)
			require.Error(t, wrongPass)
			assert.Equal(t, wrongPass.Error(), err.Error())
		})

		t.Run("RefreshRotatesTheTokenPair", func(t *testing.T) {
			login, err := flow.Login(ctx, &dto.LoginRequest{
				Username: user.Username,
				Password: "TestPass123!",
			}, nil)
			require.NoError(t, err)

			refreshed, err := flow.RefreshTokens(ctx, &dto.RefreshTokenRequest{
				RefreshToken: login.Tokens.RefreshToken,
			})
			require.NoError(t, err)
			assert.NotEqual(t, login.Tokens.RefreshToken, refreshed.Tokens.RefreshToken)

			// The spent refresh token cannot be exchanged again.
			_, err = flow.RefreshTokens(ctx, &dto.RefreshTokenRequest{
				RefreshToken: login.Tokens.RefreshToken,
			})
			require.Error(t, err)
			assert.True(t, businessflow.IsConflictError(err))
			assert.True(t, businessflow.IsTokenRevoked(err))
		})

		t.Run("LogoutRevokesTheToken", func(t *testing.T) {
			login, err := flow.Login(ctx, &dto.LoginRequest{
				Username: user.Username,
				Password: "TestPass123!",
			}, nil)
			require.NoError(t, err)

			claims, err := tokenService.ValidateAccessToken(login.Tokens.AccessToken)
			require.NoError(t, err)

			require.NoError(t, flow.Logout(ctx, claims))

			revoked, err := store.IsRevoked(ctx, claims.ID)
			require.NoError(t, err)
			assert.True(t, revoked)
		})

		return nil
	})
	require.NoError(t, err)
}
