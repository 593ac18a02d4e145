package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"ordertrack/internal/models"
	"ordertrack/internal/repositories"

	"gorm.io/gorm"
)

// EventPublisher is the fire-and-forget event capability used to announce
// order lifecycle changes. A publish failure is logged, never propagated.
type EventPublisher interface {
	Publish(eventType string, body []byte) error
}

// OrderService implements the order lifecycle state machine. All transitions
// are read-check-write against the repository; the final write wins when two
// requests race on the same order.
type OrderService struct {
	orderRepo repositories.OrderRepository
	userRepo  repositories.UserRepository
	events    EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, userRepo repositories.UserRepository, events EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		events:    events,
	}
}

// ListForUser retrieves all orders owned by the given user.
func (s *OrderService) ListForUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(userID)
}

// Create opens a new order in pending status for the given user.
func (s *OrderService) Create(userID, product string, quantity int) (*models.Order, error) {
	if quantity <= 0 {
		quantity = 1
	}
	order := &models.Order{
		UserID:   userID,
		Product:  product,
		Quantity: quantity,
		Status:   models.StatusPending,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.publish("order.created", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"product":  order.Product,
		"status":   order.Status,
	})
	return order, nil
}

// getOwned resolves an order and checks ownership. A missing order and an
// ownership mismatch both return ErrNotFound so callers cannot distinguish
// them.
func (s *OrderService) getOwned(orderID, userID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order: %w", ErrNotFound)
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("order: %w", ErrNotFound)
	}
	return order, nil
}

// UpdateProduct changes the product of a pending order.
func (s *OrderService) UpdateProduct(orderID, userID, product string) error {
	order, err := s.getOwned(orderID, userID)
	if err != nil {
		return err
	}
	if order.Status != models.StatusPending {
		return ErrOrderNotModifiable
	}
	order.Product = product
	if err := s.orderRepo.Update(order); err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	return nil
}

// Cancel moves a pending order to the terminal canceled status.
func (s *OrderService) Cancel(orderID, userID string) error {
	order, err := s.getOwned(orderID, userID)
	if err != nil {
		return err
	}
	if order.Status != models.StatusPending {
		return ErrOrderNotCancelable
	}
	order.Status = models.StatusCanceled
	if err := s.orderRepo.Update(order); err != nil {
		return fmt.Errorf("failed to cancel order: %w", err)
	}

	s.publish("order.canceled", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  order.UserID,
	})
	return nil
}

// Delete removes a pending order entirely.
func (s *OrderService) Delete(orderID, userID string) error {
	order, err := s.getOwned(orderID, userID)
	if err != nil {
		return err
	}
	if order.Status != models.StatusPending {
		return ErrOrderNotDeletable
	}
	if err := s.orderRepo.Delete(order.ID); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

// Rate records a 1-5 rating on a delivered order.
func (s *OrderService) Rate(orderID, userID string, rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	order, err := s.getOwned(orderID, userID)
	if err != nil {
		return err
	}
	if order.Status != models.StatusDelivered {
		return ErrOrderNotRatable
	}
	order.Rating = &rating
	if err := s.orderRepo.Update(order); err != nil {
		return fmt.Errorf("failed to rate order: %w", err)
	}
	return nil
}

// Review records a free-text review on a delivered order.
func (s *OrderService) Review(orderID, userID, review string) error {
	if review == "" {
		return ErrEmptyReview
	}
	order, err := s.getOwned(orderID, userID)
	if err != nil {
		return err
	}
	if order.Status != models.StatusDelivered {
		return ErrOrderNotReviewable
	}
	order.Review = &review
	if err := s.orderRepo.Update(order); err != nil {
		return fmt.Errorf("failed to review order: %w", err)
	}
	return nil
}

// AdvanceStatus moves an order one step along the shipping pipeline:
// pending -> shipped -> delivered. There is exactly one legal next state, so
// the caller supplies no target. Only admins may advance; the admin flag is
// re-read on every call so a revoked admin loses the capability immediately.
// The permission check deliberately comes before the existence check.
func (s *OrderService) AdvanceStatus(orderID, callerID string) (models.OrderStatus, error) {
	caller, err := s.userRepo.GetByID(callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrPermissionDenied
		}
		return "", fmt.Errorf("failed to resolve caller %s: %w", callerID, err)
	}
	if !caller.IsAdmin {
		return "", ErrPermissionDenied
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("order: %w", ErrNotFound)
		}
		return "", err
	}

	next, ok := order.Status.Next()
	if !ok {
		return "", ErrOrderFinal
	}
	order.Status = next
	if err := s.orderRepo.Update(order); err != nil {
		return "", fmt.Errorf("failed to update order status: %w", err)
	}

	s.publish("order.status_changed", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"status":   order.Status,
	})
	return next, nil
}

// publish sends a lifecycle event if a publisher is wired. Failures are
// logged and swallowed; order state is already committed at this point.
func (s *OrderService) publish(eventType string, payload map[string]interface{}) {
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
