package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"learnloop/backend/services"
	"learnloop/backend/utils"
)

const userClaimsKey = "userClaims"

// AuthMiddleware verifies the Bearer access token and attaches its claims
// to the request context. Every verification failure, expired included,
// maps to 401 so the client can attempt a refresh.
func AuthMiddleware(tokens *services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return utils.Error(c, fiber.StatusUnauthorized, errors.New("no token provided"))
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || scheme != "Bearer" || token == "" {
			return utils.Error(c, fiber.StatusUnauthorized, errors.New("invalid token format, use: Bearer <token>"))
		}

		claims, err := tokens.VerifyAccessToken(token)
		if err != nil {
			return utils.Error(c, fiber.StatusUnauthorized, services.ErrInvalidToken)
		}

		c.Locals(userClaimsKey, claims)
		return c.Next()
	}
}

// RequireRole guards a route behind one of the listed roles.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := UserClaims(c)
		if claims == nil {
			return utils.Error(c, fiber.StatusUnauthorized, errors.New("authentication required"))
		}
		for _, role := range roles {
			if claims.Role == role {
				return c.Next()
			}
		}
		return utils.Error(c, fiber.StatusForbidden, errors.New("insufficient permissions"))
	}
}

// UserClaims returns the verified access-token claims for the request, nil
// when the auth middleware did not run.
func UserClaims(c *fiber.Ctx) *services.AccessClaims {
	claims, _ := c.Locals(userClaimsKey).(*services.AccessClaims)
	return claims
}
