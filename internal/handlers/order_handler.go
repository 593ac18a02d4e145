package handlers

import (
	"fmt"
	"log"

	"ordertrack/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app. All order
// routes require an authenticated caller.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	orderRoutes := router.Group("/order", authRequired)
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Post("/create_order", h.HandleCreateOrder)
	orderRoutes.Put("/update_order/:id", h.HandleUpdateOrder)
	orderRoutes.Put("/cancel_order/:id", h.HandleCancelOrder)
	orderRoutes.Delete("/delete_order/:id", h.HandleDeleteOrder)
	orderRoutes.Post("/rate_order/:id", h.HandleRateOrder)
	orderRoutes.Post("/review_order/:id", h.HandleReviewOrder)
	orderRoutes.Put("/update_status/:id", h.HandleUpdateStatus)
}

// HandleGetOrders retrieves the caller's orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListForUser(callerID(c))
	if err != nil {
		log.Printf("Error getting orders: %v", err)
		return fail(c, err)
	}
	return c.JSON(orders)
}

// CreateOrderRequest represents the request body for order creation.
type CreateOrderRequest struct {
	Product  string `json:"product" validate:"required"`
	Quantity int    `json:"quantity" validate:"omitempty,gte=1"`
}

// HandleCreateOrder creates a new pending order for the caller.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	order, err := h.service.Create(callerID(c), req.Product, req.Quantity)
	if err != nil {
		log.Printf("Error creating order: %v", err)
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// UpdateOrderRequest represents the request body for an order update.
type UpdateOrderRequest struct {
	Product string `json:"product" validate:"required"`
}

// HandleUpdateOrder changes the product of a pending order.
func (h *OrderHandler) HandleUpdateOrder(c *fiber.Ctx) error {
	var req UpdateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	if err := h.service.UpdateProduct(c.Params("id"), callerID(c), req.Product); err != nil {
		log.Printf("Error updating order %s: %v", c.Params("id"), err)
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Order updated successfully",
	})
}

// HandleCancelOrder cancels a pending order.
func (h *OrderHandler) HandleCancelOrder(c *fiber.Ctx) error {
	if err := h.service.Cancel(c.Params("id"), callerID(c)); err != nil {
		log.Printf("Error canceling order %s: %v", c.Params("id"), err)
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Order canceled successfully",
	})
}

// HandleDeleteOrder deletes a pending order.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id"), callerID(c)); err != nil {
		log.Printf("Error deleting order %s: %v", c.Params("id"), err)
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Order deleted successfully",
	})
}

// RateOrderRequest represents the request body for rating an order.
type RateOrderRequest struct {
	Rating int `json:"rating" validate:"required"`
}

// HandleRateOrder records a rating on a delivered order.
func (h *OrderHandler) HandleRateOrder(c *fiber.Ctx) error {
	var req RateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Rating must be a valid integer between 1 and 5",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	if err := h.service.Rate(c.Params("id"), callerID(c), req.Rating); err != nil {
		log.Printf("Error rating order %s: %v", c.Params("id"), err)
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Order rated successfully",
	})
}

// ReviewOrderRequest represents the request body for reviewing an order.
type ReviewOrderRequest struct {
	Review string `json:"review" validate:"required"`
}

// HandleReviewOrder records a free-text review on a delivered order.
func (h *OrderHandler) HandleReviewOrder(c *fiber.Ctx) error {
	var req ReviewOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	if err := h.service.Review(c.Params("id"), callerID(c), req.Review); err != nil {
		log.Printf("Error reviewing order %s: %v", c.Params("id"), err)
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Order review submitted successfully",
	})
}

// HandleUpdateStatus advances an order one step along the shipping pipeline.
// Admin only; the service decides the next state, the request carries no
// target.
func (h *OrderHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	newStatus, err := h.service.AdvanceStatus(c.Params("id"), callerID(c))
	if err != nil {
		log.Printf("Error advancing status of order %s: %v", c.Params("id"), err)
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Order status updated to %s successfully", newStatus),
	})
}
