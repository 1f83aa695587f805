// Package services provides application services for token management and external integrations
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Davisit00/aviges/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token kinds carried in the claim set
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
	ErrWrongTokenType = errors.New("wrong token type")
)

// TokenClaims is the JWT claim set issued for operator sessions
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenService issues and validates operator session tokens
type TokenService interface {
	GenerateTokens(userID uint, username, role string) (accessToken, refreshToken string, err error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
}

// TokenServiceImpl implements TokenService with HS256 signing
type TokenServiceImpl struct {
	secret []byte
	clock  utils.Clock
}

// NewTokenService creates a new token service
func NewTokenService(secret string, clock utils.Clock) TokenService {
	return &TokenServiceImpl{
		secret: []byte(secret),
		clock:  clock,
	}
}

// GenerateTokens issues an access and refresh token pair for a user
func (s *TokenServiceImpl) GenerateTokens(userID uint, username, role string) (string, string, error) {
	accessToken, err := s.sign(userID, username, role, TokenTypeAccess, utils.AccessTokenTTL)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken, err := s.sign(userID, username, role, TokenTypeRefresh, utils.RefreshTokenTTL)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}

func (s *TokenServiceImpl) sign(userID uint, username, role, tokenType string, ttl time.Duration) (string, error) {
	now := s.clock.Now()
	claims := TokenClaims{
		UserID:    userID,
		Username:  username,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    "aviges",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateAccessToken parses and verifies an access token
func (s *TokenServiceImpl) ValidateAccessToken(token string) (*TokenClaims, error) {
	return s.validate(token, TokenTypeAccess)
}

// ValidateRefreshToken parses and verifies a refresh token
func (s *TokenServiceImpl) ValidateRefreshToken(token string) (*TokenClaims, error) {
	return s.validate(token, TokenTypeRefresh)
}

func (s *TokenServiceImpl) validate(tokenString, expectedType string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.clock.Now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != expectedType {
		return nil, ErrWrongTokenType
	}

	return claims, nil
}
