// Package middleware provides HTTP middleware for authentication, metrics and request handling
package middleware

import (
	"log"
	"strings"

	"github.com/Davisit00/aviges/app/dto"
	"github.com/Davisit00/aviges/app/services"
	"github.com/gofiber/fiber/v3"
)

const claimsLocalKey = "auth_claims"

// AuthMiddleware validates bearer tokens and rejects revoked ones
type AuthMiddleware struct {
	tokenService    services.TokenService
	revocationStore services.RevocationStore
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(tokenService services.TokenService, revocationStore services.RevocationStore) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService:    tokenService,
		revocationStore: revocationStore,
	}
}

// RequireAuth returns a handler that rejects requests without a valid,
// unrevoked access token
func (m *AuthMiddleware) RequireAuth() fiber.Handler {
	return func(c fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return unauthorized(c, "Authentication required")
		}

		token := strings.TrimPrefix(header, "Bearer ")
		claims, err := m.tokenService.ValidateAccessToken(token)
		if err != nil {
			return unauthorized(c, "Invalid or expired token")
		}

		revoked, err := m.revocationStore.IsRevoked(c.Context(), claims.ID)
		if err != nil {
			log.Println("revocation check failed:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.NewErrorResponse("Internal server error", "INTERNAL", nil))
		}
		if revoked {
			return unauthorized(c, "Token has been revoked")
		}

		c.Locals(claimsLocalKey, claims)
		return c.Next()
	}
}

// RequireRole returns a handler that additionally checks the role claim
func (m *AuthMiddleware) RequireRole(roles ...string) fiber.Handler {
	return func(c fiber.Ctx) error {
		claims := ClaimsFromContext(c)
		if claims == nil {
			return unauthorized(c, "Authentication required")
		}
		for _, role := range roles {
			if claims.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.NewErrorResponse("Insufficient permissions", "FORBIDDEN", nil))
	}
}

// ClaimsFromContext returns the claims stored by RequireAuth, or nil
func ClaimsFromContext(c fiber.Ctx) *services.TokenClaims {
	claims, _ := c.Locals(claimsLocalKey).(*services.TokenClaims)
	return claims
}

func unauthorized(c fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.NewErrorResponse(message, "UNAUTHORIZED", nil))
}
