package handler

import (
	"github.com/gofiber/fiber/v2"

	"healthvault/internal/service"
)

// RandomTip handles GET /api/health-tips, returning one tip from the fixed
// catalog per call.
func RandomTip(tipSvc service.TipService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"tip": tipSvc.Random()})
	}
}
