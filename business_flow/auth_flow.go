package businessflow

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Davisit00/aviges/app/dto"
	"github.com/Davisit00/aviges/app/services"
	"github.com/Davisit00/aviges/repository"
	"github.com/Davisit00/aviges/utils"
)

// AuthFlow handles operator login and logout
type AuthFlow interface {
	Login(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error)
	Logout(ctx context.Context, claims *services.TokenClaims) error
	RefreshTokens(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.LoginResponse, error)
}

// AuthFlowImpl implements the authentication business flow
type AuthFlowImpl struct {
	userRepo        repository.UserRepository
	tokenService    services.TokenService
	revocationStore services.RevocationStore
	clock           utils.Clock
}

// NewAuthFlow creates a new auth flow instance
func NewAuthFlow(
	userRepo repository.UserRepository,
	tokenService services.TokenService,
	revocationStore services.RevocationStore,
	clock utils.Clock,
) AuthFlow {
	return &AuthFlowImpl{
		userRepo:        userRepo,
		tokenService:    tokenService,
		revocationStore: revocationStore,
		clock:           clock,
	}
}

// Login verifies the credentials and issues a token pair
func (s *AuthFlowImpl) Login(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error) {
	user, err := s.userRepo.ByUsername(ctx, req.Username)
	if err != nil {
		return nil, NewInternalError("failed to load user", err)
	}
	if user == nil {
		// One answer for unknown user and wrong password; the response must
		// not reveal whether the account exists.
		return nil, NewValidationError("invalid credentials", ErrIncorrectPassword)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, NewValidationError("invalid credentials", ErrIncorrectPassword)
	}

	roleName := ""
	if user.Role != nil {
		roleName = user.Role.Name
	}

	access, refresh, err := s.tokenService.GenerateTokens(user.ID, user.Username, roleName)
	if err != nil {
		return nil, NewInternalError("failed to issue tokens", err)
	}

	resp := &dto.LoginResponse{
		Tokens: dto.TokenDTO{
			AccessToken:  access,
			RefreshToken: refresh,
			TokenType:    "Bearer",
			ExpiresIn:    int(utils.AccessTokenTTL.Seconds()),
		},
	}
	resp.User = dto.AuthUserDTO{
		ID:       user.ID,
		Username: user.Username,
		Role:     roleName,
	}
	if user.Person != nil {
		resp.User.FirstName = user.Person.FirstName
		resp.User.LastName = user.Person.LastName
	}

	return resp, nil
}

// Logout revokes the presented token until its natural expiry
func (s *AuthFlowImpl) Logout(ctx context.Context, claims *services.TokenClaims) error {
	ttl := time.Duration(0)
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(s.clock.Now())
	}

	if err := s.revocationStore.Revoke(ctx, claims.ID, ttl); err != nil {
		return NewInternalError("failed to revoke token", err)
	}

	return nil
}

// RefreshTokens validates a refresh token, revokes it, and issues a new pair
func (s *AuthFlowImpl) RefreshTokens(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.LoginResponse, error) {
	claims, err := s.tokenService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, NewValidationError("invalid refresh token", err)
	}

	revoked, err := s.revocationStore.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, NewInternalError("failed to check token revocation", err)
	}
	if revoked {
		return nil, NewConflictError("token has been revoked", ErrTokenRevoked)
	}

	user, err := s.userRepo.ByUsername(ctx, claims.Username)
	if err != nil {
		return nil, NewInternalError("failed to load user", err)
	}
	if user == nil {
		return nil, NewNotFoundError("user not found", ErrUserNotFound)
	}

	// Rotate: the old refresh token dies with this exchange.
	if err := s.Logout(ctx, claims); err != nil {
		return nil, err
	}

	roleName := ""
	if user.Role != nil {
		roleName = user.Role.Name
	}

	access, refresh, err := s.tokenService.GenerateTokens(user.ID, user.Username, roleName)
	if err != nil {
		return nil, NewInternalError("failed to issue tokens", err)
	}

	resp := &dto.LoginResponse{
		Tokens: dto.TokenDTO{
			AccessToken:  access,
			RefreshToken: refresh,
			TokenType:    "Bearer",
			ExpiresIn:    int(utils.AccessTokenTTL.Seconds()),
		},
		User: dto.AuthUserDTO{
			ID:       user.ID,
			Username: user.Username,
			Role:     roleName,
		},
	}
	if user.Person != nil {
		resp.User.FirstName = user.Person.FirstName
		resp.User.LastName = user.Person.LastName
	}

	return resp, nil
}
