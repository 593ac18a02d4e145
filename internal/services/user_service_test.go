package services_test

import (
	"testing"

	"ordertrack/internal/models"
	"ordertrack/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestUserService_GetProfile(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	user := &models.User{ID: "user-1", FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"}
	mockRepo.On("GetByID", "user-1").Return(user, nil).Once()
	got, err := service.GetProfile("user-1")
	assert.NoError(t, err)
	assert.Equal(t, user, got)

	mockRepo.On("GetByID", "ghost").Return(nil, notFoundErr("user with ID ghost")).Once()
	_, err = service.GetProfile("ghost")
	assert.ErrorIs(t, err, services.ErrNotFound)

	mockRepo.AssertExpectations(t)
}

func TestUserService_UpdateProfile(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	// At least one field is required
	err := service.UpdateProfile("user-1", "", "")
	assert.ErrorIs(t, err, services.ErrNothingToUpdate)

	// Partial update leaves the other field untouched
	user := &models.User{ID: "user-1", FirstName: "Jane", LastName: "Doe"}
	mockRepo.On("GetByID", "user-1").Return(user, nil).Once()
	mockRepo.On("Update", user).Return(nil).Once()
	err = service.UpdateProfile("user-1", "Janet", "")
	assert.NoError(t, err)
	assert.Equal(t, "Janet", user.FirstName)
	assert.Equal(t, "Doe", user.LastName)

	mockRepo.AssertExpectations(t)
}

func TestUserService_DeleteProfile(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	// Deletion demands the literal confirmation value
	err := service.DeleteProfile("user-1", "")
	assert.ErrorIs(t, err, services.ErrConfirmationRequired)
	err = service.DeleteProfile("user-1", "no")
	assert.ErrorIs(t, err, services.ErrConfirmationRequired)
	mockRepo.AssertNotCalled(t, "Delete", "user-1")

	// Confirmation is case-insensitive
	mockRepo.On("Delete", "user-1").Return(nil).Once()
	err = service.DeleteProfile("user-1", "YES")
	assert.NoError(t, err)

	mockRepo.AssertExpectations(t)
}
