package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequireGameID rejects requests whose :gameId is not a well-formed uuid and
// stores the normalized id in locals.
func RequireGameID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("gameId"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "a valid game ID is required",
			})
		}
		c.Locals("gameID", id.String())
		return c.Next()
	}
}
