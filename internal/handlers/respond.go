package handlers

import (
	"errors"
	"fmt"

	"ordertrack/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// statusFor maps service-layer sentinel errors onto HTTP status codes.
// Anything unrecognized is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrPermissionDenied),
		errors.Is(err, services.ErrShipmentForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrWrongOldPassword):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrDuplicateTracking),
		errors.Is(err, services.ErrShipmentExists):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrMailDelivery):
		return fiber.StatusInternalServerError
	case errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrWeakPassword),
		errors.Is(err, services.ErrOrderNotModifiable),
		errors.Is(err, services.ErrOrderNotCancelable),
		errors.Is(err, services.ErrOrderNotDeletable),
		errors.Is(err, services.ErrOrderFinal),
		errors.Is(err, services.ErrOrderNotRatable),
		errors.Is(err, services.ErrOrderNotReviewable),
		errors.Is(err, services.ErrInvalidRating),
		errors.Is(err, services.ErrEmptyReview),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrOrderNotShipped),
		errors.Is(err, services.ErrConfirmationRequired),
		errors.Is(err, services.ErrNothingToUpdate):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// fail writes the standard error envelope for a service error.
func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"message": err.Error(),
	})
}

// failValidation writes a per-field error map for validator failures.
func failValidation(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// callerID reads the authenticated principal placed in locals by the JWT
// middleware.
func callerID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
