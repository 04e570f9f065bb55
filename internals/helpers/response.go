package helper

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Every payload carries a boolean success flag; failures add a
// domain-specific error string.

func JsonOK(c *fiber.Ctx, code int, message string, data interface{}) error {
	return c.Status(code).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func JsonError(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func JsonErrorWithDetails(c *fiber.Ctx, code int, message string, details interface{}) error {
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
		"details": details,
	})
}

// ValidationError maps validator.v10 failures to a 400 with per-field tags.
func ValidationError(c *fiber.Ctx, err error) error {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return JsonError(c, fiber.StatusBadRequest, "invalid input")
	}
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = fe.Tag()
	}
	return JsonErrorWithDetails(c, fiber.StatusBadRequest, "invalid input", fields)
}
