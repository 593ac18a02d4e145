package repositories

import "ordertrack/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	Update(user *models.User) error
	// Delete removes the user and cascades to their orders and shipments.
	Delete(id string) error
}
