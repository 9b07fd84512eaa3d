package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"healthvault/internal/http/middleware"
	"healthvault/internal/service"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/auth/register.
func Register(authSvc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		}

		user, token, err := authSvc.Register(c.UserContext(), req.Username, req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrUsernameTooShort):
				return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "Username must be at least 3 characters")
			case errors.Is(err, service.ErrInvalidEmail):
				return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "Invalid email address")
			case errors.Is(err, service.ErrPasswordTooShort):
				return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "Password must be at least 6 characters")
			case errors.Is(err, service.ErrEmailTaken):
				return writeError(c, fiber.StatusBadRequest, "CONFLICT", "User already exists with this email")
			case errors.Is(err, service.ErrUsernameTaken):
				return writeError(c, fiber.StatusBadRequest, "CONFLICT", "Username already taken")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Registration failed")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "User created successfully",
			"token":   token,
			"user":    user.Public(),
		})
	}
}

// Login handles POST /api/auth/login. Unknown email and wrong password
// produce the identical response.
func Login(authSvc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		}

		user, token, err := authSvc.Login(c.UserContext(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Invalid email or password")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Login failed")
		}

		return c.JSON(fiber.Map{
			"message": "Login successful",
			"token":   token,
			"user":    user.Public(),
		})
	}
}

// Me handles GET /api/auth/me for the authenticated user.
func Me() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)
		if user == nil {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Access token required")
		}
		return c.JSON(fiber.Map{"user": user.Public()})
	}
}
