package middleware

import (
	"duckstore/internal/services"

	"github.com/gofiber/fiber/v2"
)

// TokenHeader carries the signed token on protected requests.
const TokenHeader = "auth-token"

// UserIDKey is the Fiber locals key holding the authenticated user's ID.
const UserIDKey = "user_id"

// TokenVerifier validates a token and returns its claims.
type TokenVerifier interface {
	VerifyToken(token string) (*services.TokenClaims, error)
}

// AuthRequired is a Fiber middleware that rejects requests without a valid
// token in the auth-token header. The error is answered by the app's error
// handler, so the wrapped handler never runs.
func AuthRequired(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := verifier.VerifyToken(c.Get(TokenHeader))
		if err != nil {
			return err
		}

		c.Locals(UserIDKey, claims.ID)
		return c.Next()
	}
}

// UserID returns the authenticated user's ID, or "" on public routes.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDKey).(string)
	return id
}
