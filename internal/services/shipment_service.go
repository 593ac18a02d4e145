package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"ordertrack/internal/models"
	"ordertrack/internal/repositories"

	"gorm.io/gorm"
)

// deliveryDateLayout is the fixed wire format for optional delivery dates.
const deliveryDateLayout = "2006-01-02 15:04:05"

// ShipmentService manages the tracking-number-indexed shipment ledger.
// Shipments are created by admins and read by the owning customer or any
// admin.
type ShipmentService struct {
	shipmentRepo repositories.ShipmentRepository
	orderRepo    repositories.OrderRepository
	userRepo     repositories.UserRepository
	events       EventPublisher

	// requireShipped rejects shipment creation for orders still pending.
	// Off by default: an admin manually shipping may create the shipment
	// and advance the order in either sequence.
	requireShipped bool
}

// NewShipmentService creates a new ShipmentService.
func NewShipmentService(shipmentRepo repositories.ShipmentRepository, orderRepo repositories.OrderRepository, userRepo repositories.UserRepository, events EventPublisher, requireShipped bool) *ShipmentService {
	return &ShipmentService{
		shipmentRepo:   shipmentRepo,
		orderRepo:      orderRepo,
		userRepo:       userRepo,
		events:         events,
		requireShipped: requireShipped,
	}
}

// isAdmin re-reads the caller's record and reports the current admin flag.
// An unknown caller is simply not an admin; repository failures propagate so
// an outage is never mistaken for a refusal.
func (s *ShipmentService) isAdmin(callerID string) (bool, error) {
	user, err := s.userRepo.GetByID(callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to resolve caller %s: %w", callerID, err)
	}
	return user.IsAdmin, nil
}

// Create registers a shipment for an order. Admin only. deliveryDate is
// optional; when supplied it must parse as "YYYY-MM-DD HH:MM:SS". An insert
// collision is ErrShipmentExists when the order is already shipped, otherwise
// ErrDuplicateTracking.
func (s *ShipmentService) Create(callerID, orderID, trackingNumber, deliveryDate string) (*models.Shipment, error) {
	admin, err := s.isAdmin(callerID)
	if err != nil {
		return nil, err
	}
	if !admin {
		return nil, ErrPermissionDenied
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order: %w", ErrNotFound)
		}
		return nil, err
	}
	if s.requireShipped && order.Status == models.StatusPending {
		return nil, ErrOrderNotShipped
	}

	var delivered *time.Time
	if deliveryDate != "" {
		parsed, err := time.Parse(deliveryDateLayout, deliveryDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		delivered = &parsed
	}

	shipment := &models.Shipment{
		OrderID:        order.ID,
		TrackingNumber: trackingNumber,
		DeliveryDate:   delivered,
	}
	if err := s.shipmentRepo.Create(shipment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Both order_id and tracking_number are unique; look up which
			// one collided so the message points at the right conflict.
			if existing, lookupErr := s.shipmentRepo.GetByOrderID(order.ID); lookupErr == nil && existing != nil {
				return nil, ErrShipmentExists
			}
			return nil, ErrDuplicateTracking
		}
		return nil, fmt.Errorf("failed to create shipment: %w", err)
	}

	s.publish("shipment.created", map[string]interface{}{
		"shipment_id":     shipment.ID,
		"order_id":        shipment.OrderID,
		"tracking_number": shipment.TrackingNumber,
	})
	return shipment, nil
}

// TrackByNumber resolves a shipment by tracking number. The shipment is only
// visible to the owner of the linked order and to admins; everyone else gets
// ErrShipmentForbidden after the shipment is known to exist.
func (s *ShipmentService) TrackByNumber(trackingNumber, callerID string) (*models.Shipment, error) {
	shipment, err := s.shipmentRepo.GetByTrackingNumber(trackingNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("shipment: %w", ErrNotFound)
		}
		return nil, err
	}

	order, err := s.orderRepo.GetByID(shipment.OrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve order for shipment: %w", err)
	}
	if order.UserID != callerID {
		admin, err := s.isAdmin(callerID)
		if err != nil {
			return nil, err
		}
		if !admin {
			return nil, ErrShipmentForbidden
		}
	}
	return shipment, nil
}

// GetByOrder returns the shipment for an order the caller may see, or
// (nil, nil) when the order exists but has no shipment yet. An absent order
// and an order owned by someone else both return ErrNotFound.
func (s *ShipmentService) GetByOrder(orderID, callerID string) (*models.Shipment, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order: %w", ErrNotFound)
		}
		return nil, err
	}
	if order.UserID != callerID {
		admin, err := s.isAdmin(callerID)
		if err != nil {
			return nil, err
		}
		if !admin {
			return nil, fmt.Errorf("order: %w", ErrNotFound)
		}
	}

	shipment, err := s.shipmentRepo.GetByOrderID(order.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // no shipment yet, not an error
		}
		return nil, err
	}
	return shipment, nil
}

func (s *ShipmentService) publish(eventType string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", eventType, err)
		return
	}
	if err := s.events.Publish(eventType, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", eventType, err)
	}
}
