package http

import (
	"strings"

	"github.com/ANIKETSHETTY47/smart-plug-monitoring-system/internal/auth"
	"github.com/ANIKETSHETTY47/smart-plug-monitoring-system/internal/domain"
	"github.com/gofiber/fiber/v2"
)

const claimsKey = "claims"

// RequireAuth validates the bearer token and stashes its claims on the
// request context.
func RequireAuth(tokens *auth.JWTManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "No token, authorization denied"})
		}
		claims, err := tokens.ValidateToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Token is not valid"})
		}
		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// RequireAdmin rejects requests whose token does not carry the admin role.
// Must run after RequireAuth.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := ClaimsFrom(c)
		if claims == nil || claims.Role != domain.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied"})
		}
		return c.Next()
	}
}

// ClaimsFrom returns the authenticated claims, or nil outside RequireAuth.
func ClaimsFrom(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(claimsKey).(*auth.Claims)
	return claims
}
