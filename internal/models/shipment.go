package models

import (
	"time"

	"gorm.io/gorm"
)

// Shipment is a tracking record, one-to-one with its order (unique OrderID).
// Shipments are created by admins and never mutated afterwards.
type Shipment struct {
	ID             string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	OrderID        string     `json:"order_id" gorm:"uniqueIndex;type:varchar(36)" validate:"required"`
	TrackingNumber string     `json:"tracking_number" gorm:"uniqueIndex;type:varchar(255)" validate:"required,max=255"`
	ShippedDate    time.Time  `json:"shipped_date"`
	DeliveryDate   *time.Time `json:"delivery_date,omitempty"`
	gorm.Model                // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
