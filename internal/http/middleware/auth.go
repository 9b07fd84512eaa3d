package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"healthvault/internal/auth"
	"healthvault/internal/model"
	"healthvault/internal/repository"
)

// UserLocalKey is the key under which the authenticated user is stored in
// Fiber's context locals. It is the sole channel by which handlers learn
// the requesting identity.
const UserLocalKey = "current_user"

// RequireAuth authenticates a request from its bearer token.
//
// Failure modes are distinct by design:
// - no usable Authorization header     -> 401
// - token fails signature/expiry check -> 403
// - token valid but user since deleted -> 404
//
// Token claims are treated as an untrusted cache of identity: the user is
// re-resolved from storage on every request so revoked accounts lose access
// immediately.
func RequireAuth(tokens *auth.TokenManager, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return authError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Access token required")
		}

		claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return authError(c, fiber.StatusForbidden, "FORBIDDEN", "Invalid or expired token")
		}

		user, err := users.FindByID(c.UserContext(), claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return authError(c, fiber.StatusNotFound, "NOT_FOUND", "User not found")
			}
			return authError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		c.Locals(UserLocalKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user resolved by RequireAuth, or nil when the
// route is not behind it.
func CurrentUser(c *fiber.Ctx) *model.User {
	u, _ := c.Locals(UserLocalKey).(*model.User)
	return u
}

// authError mirrors the handler package's error envelope. It is duplicated
// here to keep the middleware package free of a handler dependency.
func authError(c *fiber.Ctx, status int, code, message string) error {
	rid, _ := c.Locals(RequestIDLocalKey).(string)
	return c.Status(status).JSON(fiber.Map{
		"request_id": rid,
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}
