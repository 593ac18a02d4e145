package handlers

import (
	"log"

	"ordertrack/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ShipmentHandler handles HTTP requests for shipments.
type ShipmentHandler struct {
	service  *services.ShipmentService
	validate *validator.Validate
}

// NewShipmentHandler creates a new ShipmentHandler.
func NewShipmentHandler(service *services.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the shipment routes with the Fiber app.
// "/order/:order_id" must be registered before the tracking-number
// catch-all.
func (h *ShipmentHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	shipmentRoutes := router.Group("/shipment", authRequired)
	shipmentRoutes.Post("/create", h.HandleCreateShipment)
	shipmentRoutes.Get("/order/:order_id", h.HandleGetShipmentByOrder)
	shipmentRoutes.Get("/:tracking_number", h.HandleTrackShipment)
}

// CreateShipmentRequest represents the request body for shipment creation.
type CreateShipmentRequest struct {
	OrderID        string `json:"order_id" validate:"required"`
	TrackingNumber string `json:"tracking_number" validate:"required"`
	DeliveryDate   string `json:"delivery_date" validate:"omitempty"`
}

// HandleCreateShipment registers a shipment for an order. Admin only.
func (h *ShipmentHandler) HandleCreateShipment(c *fiber.Ctx) error {
	var req CreateShipmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	shipment, err := h.service.Create(callerID(c), req.OrderID, req.TrackingNumber, req.DeliveryDate)
	if err != nil {
		log.Printf("Error creating shipment for order %s: %v", req.OrderID, err)
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(shipment)
}

// HandleTrackShipment resolves a shipment by tracking number for its owner
// or an admin.
func (h *ShipmentHandler) HandleTrackShipment(c *fiber.Ctx) error {
	shipment, err := h.service.TrackByNumber(c.Params("tracking_number"), callerID(c))
	if err != nil {
		log.Printf("Error tracking shipment %s: %v", c.Params("tracking_number"), err)
		return fail(c, err)
	}
	return c.JSON(shipment)
}

// HandleGetShipmentByOrder returns the shipment for an order, or an explicit
// "no shipment yet" message when none exists.
func (h *ShipmentHandler) HandleGetShipmentByOrder(c *fiber.Ctx) error {
	shipment, err := h.service.GetByOrder(c.Params("order_id"), callerID(c))
	if err != nil {
		log.Printf("Error getting shipment for order %s: %v", c.Params("order_id"), err)
		return fail(c, err)
	}
	if shipment == nil {
		return c.JSON(fiber.Map{
			"message": "No shipment found for this order",
		})
	}
	return c.JSON(shipment)
}
