package models

import "gorm.io/gorm"

// OrderStatus is the lifecycle state of an order.
//
// The lifecycle is linear: pending -> shipped -> delivered, advanced only by
// admins, plus the owner-driven pending -> canceled. delivered and canceled
// are terminal.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCanceled  OrderStatus = "canceled"
)

// Next returns the single legal forward transition from s. The second return
// value is false when s is terminal.
func (s OrderStatus) Next() (OrderStatus, bool) {
	switch s {
	case StatusPending:
		return StatusShipped, true
	case StatusShipped:
		return StatusDelivered, true
	default:
		return s, false
	}
}

// IsFinal reports whether no further status transition exists.
func (s OrderStatus) IsFinal() bool {
	return s == StatusDelivered || s == StatusCanceled
}

// Order represents a customer order. UserID is immutable after creation;
// rating and review are only settable once the order is delivered.
type Order struct {
	ID         string      `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID     string      `json:"user_id" gorm:"index;type:varchar(36)" validate:"required"`
	Product    string      `json:"product" gorm:"type:varchar(255)" validate:"required,max=255"`
	Quantity   int         `json:"quantity" gorm:"default:1" validate:"omitempty,gte=1"`
	Status     OrderStatus `json:"status" gorm:"type:varchar(20);default:pending"`
	Rating     *int        `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Review     *string     `json:"review,omitempty"`
	gorm.Model             // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
