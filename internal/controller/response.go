package controller

import (
	"github.com/gofiber/fiber/v2"

	"propsite_backend/pkg/utils/validation"
)

const submitFailedMessage = "Something went wrong sending your details. Please try again or call our office directly."

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   "Invalid request body",
	})
}

// bodyError answers a request whose body could not be decoded. Type
// mismatches are reported against the offending field.
func bodyError(c *fiber.Ctx, err error) error {
	if errs := validation.DecodeErrors(err); errs != nil {
		return validationFailed(c, errs)
	}
	return invalidBody(c)
}

func validationFailed(c *fiber.Ctx, errs []validation.FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   "Validation failed",
		"details": errs,
	})
}

func submitFailed(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"error":   submitFailedMessage,
	})
}
