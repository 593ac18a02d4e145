package repositories

import (
	"fmt"
	"time"

	"ordertrack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMShipmentRepository is a GORM implementation of ShipmentRepository.
type GORMShipmentRepository struct {
	db *gorm.DB
}

// NewGORMShipmentRepository creates a new instance of GORMShipmentRepository.
func NewGORMShipmentRepository(db *gorm.DB) *GORMShipmentRepository {
	return &GORMShipmentRepository{
		db: db,
	}
}

// Create inserts a shipment. Uniqueness of both the tracking number and the
// order ID is enforced by the insert; collisions surface as
// gorm.ErrDuplicatedKey rather than being pre-checked, so there is no race
// window between check and insert.
func (r *GORMShipmentRepository) Create(shipment *models.Shipment) error {
	if shipment.ID == "" {
		shipment.ID = uuid.New().String()
	}
	if shipment.ShippedDate.IsZero() {
		shipment.ShippedDate = time.Now()
	}
	if err := r.db.Create(shipment).Error; err != nil {
		return fmt.Errorf("failed to create shipment: %w", err)
	}
	return nil
}

// GetByTrackingNumber retrieves a shipment by its tracking number.
func (r *GORMShipmentRepository) GetByTrackingNumber(trackingNumber string) (*models.Shipment, error) {
	var shipment models.Shipment
	if err := r.db.First(&shipment, "tracking_number = ?", trackingNumber).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("shipment with tracking number %s: %w", trackingNumber, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to get shipment by tracking number %s: %w", trackingNumber, err)
	}
	return &shipment, nil
}

// GetByOrderID retrieves the shipment attached to an order, if any.
func (r *GORMShipmentRepository) GetByOrderID(orderID string) (*models.Shipment, error) {
	var shipment models.Shipment
	if err := r.db.First(&shipment, "order_id = ?", orderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("shipment for order %s: %w", orderID, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to get shipment by order ID %s: %w", orderID, err)
	}
	return &shipment, nil
}
