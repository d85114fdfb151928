package handlers

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// validationFailed renders the field-level validation error envelope.
func validationFailed(c *fiber.Ctx, err error) error {
	validationErrors := err.(validator.ValidationErrors)
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// serviceError maps a service error to an HTTP response by inspecting its
// message, the same way the repositories and services phrase them:
// unresolvable cross-references are validation failures, invisible or absent
// rows are 404, unique violations are 409, ownership refusals are 403.
func serviceError(c *fiber.Ctx, message string, err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "does not resolve"):
		field := strings.SplitN(msg, " ", 2)[0]
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  map[string]string{field: msg},
		})
	case strings.Contains(msg, "not found"):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": msg,
		})
	case strings.Contains(msg, "already"):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": message,
			"error":   msg,
		})
	case strings.Contains(msg, "can only be"):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": msg,
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": message,
			"error":   msg,
		})
	}
}
