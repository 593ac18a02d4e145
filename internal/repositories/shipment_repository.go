package repositories

import "ordertrack/internal/models"

// ShipmentRepository defines the interface for shipment data access.
type ShipmentRepository interface {
	Create(shipment *models.Shipment) error
	GetByTrackingNumber(trackingNumber string) (*models.Shipment, error)
	GetByOrderID(orderID string) (*models.Shipment, error)
}
