package auth

import (
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/gjone124/restaurant-finder-backend/internal/apperr"
)

// Middleware verifies the bearer token on protected routes and stores the
// parsed token in c.Locals("user"). Missing, malformed, or expired tokens all
// yield the same 401.
func Middleware(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: []byte(secret),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return apperr.Unauthorized("Authorization required.")
		},
	})
}

// UserIDFromCtx extracts the `_id` claim from the token placed in locals by
// the middleware. Several handlers need this, so it lives here for reuse.
func UserIDFromCtx(c *fiber.Ctx) (string, error) {
	u := c.Locals("user")
	if u == nil {
		return "", ErrInvalidToken
	}
	tok, ok := u.(*jwt.Token)
	if !ok {
		return "", ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	id, ok := claims["_id"].(string)
	if !ok || id == "" {
		return "", ErrInvalidToken
	}

	return id, nil
}
