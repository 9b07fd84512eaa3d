package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"healthvault/internal/http/middleware"
	"healthvault/internal/service"
)

type wellnessRequest struct {
	Mood  int    `json:"mood"`
	Notes string `json:"notes"`
}

// CreateWellnessEntry handles POST /api/wellness.
func CreateWellnessEntry(wellSvc service.WellnessService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)

		var req wellnessRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		}

		entry, err := wellSvc.Create(c.UserContext(), user.ID, req.Mood, req.Notes)
		if err != nil {
			if errors.Is(err, service.ErrMoodOutOfRange) {
				return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "Mood must be between 1 and 5")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create wellness entry")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Wellness entry created successfully",
			"entry":   entry,
		})
	}
}

// ListWellnessEntries handles GET /api/wellness for the authenticated user.
func ListWellnessEntries(wellSvc service.WellnessService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)

		entries, err := wellSvc.List(c.UserContext(), user.ID)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch wellness entries")
		}
		return c.JSON(fiber.Map{"entries": entries})
	}
}
