package handlers

import (
	"log"

	"ordertrack/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for the caller's own profile.
type UserHandler struct {
	service *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// RegisterRoutes registers the profile routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	userRoutes := router.Group("/user", authRequired)
	userRoutes.Get("/profile", h.HandleGetProfile)
	userRoutes.Put("/profile_update", h.HandleUpdateProfile)
	userRoutes.Delete("/profile_delete", h.HandleDeleteProfile)
}

// HandleGetProfile returns the caller's user record.
func (h *UserHandler) HandleGetProfile(c *fiber.Ctx) error {
	user, err := h.service.GetProfile(callerID(c))
	if err != nil {
		log.Printf("Error getting profile: %v", err)
		return fail(c, err)
	}
	return c.JSON(user)
}

// UpdateProfileRequest represents the request body for a profile update.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// HandleUpdateProfile updates the caller's name fields.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.service.UpdateProfile(callerID(c), req.FirstName, req.LastName); err != nil {
		log.Printf("Error updating profile: %v", err)
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
	})
}

// DeleteProfileRequest represents the request body for account deletion.
type DeleteProfileRequest struct {
	Confirm string `json:"confirm"`
}

// HandleDeleteProfile deletes the caller's account after explicit
// confirmation, cascading to their orders and shipments.
func (h *UserHandler) HandleDeleteProfile(c *fiber.Ctx) error {
	var req DeleteProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.service.DeleteProfile(callerID(c), req.Confirm); err != nil {
		log.Printf("Error deleting profile: %v", err)
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Profile deleted successfully",
	})
}
