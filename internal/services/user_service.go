package services

import (
	"errors"
	"fmt"
	"strings"

	"ordertrack/internal/models"
	"ordertrack/internal/repositories"

	"gorm.io/gorm"
)

// UserService handles profile reads and mutations.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// GetProfile retrieves the caller's own user record.
func (s *UserService) GetProfile(userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user: %w", ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile changes the caller's name. At least one of firstName or
// lastName must be supplied; empty fields are left untouched.
func (s *UserService) UpdateProfile(userID, firstName, lastName string) error {
	if firstName == "" && lastName == "" {
		return ErrNothingToUpdate
	}

	user, err := s.GetProfile(userID)
	if err != nil {
		return err
	}
	if firstName != "" {
		user.FirstName = firstName
	}
	if lastName != "" {
		user.LastName = lastName
	}
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// DeleteProfile removes the caller's account after an explicit confirmation.
// The repository cascades the delete to the user's orders and their
// shipments.
func (s *UserService) DeleteProfile(userID, confirm string) error {
	if !strings.EqualFold(confirm, "yes") {
		return ErrConfirmationRequired
	}

	if err := s.userRepo.Delete(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user: %w", ErrNotFound)
		}
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}
