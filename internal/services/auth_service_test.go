package services_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"ordertrack/internal/models"
	"ordertrack/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testJWTSecret = "test_jwt_secret"

func newAuthService(repo *MockUserRepository, mailer *MockMailer) *services.AuthService {
	return services.NewAuthService(repo, mailer, testJWTSecret, "http://localhost:3000")
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo, nil)

	// Successful registration returns the user and a usable token
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()
	user, token, err := authService.Register("Jane", "Doe", "jane@example.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "jane@example.com", user.Email)
	// The stored password is a digest, never the raw value
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	mockRepo.AssertExpectations(t)

	// Invalid email shape
	_, _, err = authService.Register("Jane", "Doe", "not-an-email", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidEmail)

	// Password policy: length and digit
	_, _, err = authService.Register("Jane", "Doe", "jane@example.com", "short1")
	assert.ErrorIs(t, err, services.ErrWeakPassword)
	_, _, err = authService.Register("Jane", "Doe", "jane@example.com", "nodigitshere")
	assert.ErrorIs(t, err, services.ErrWeakPassword)

	// Duplicate email surfaces from the insert itself
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).
		Return(fmt.Errorf("failed to create user: %w", gorm.ErrDuplicatedKey)).Once()
	_, _, err = authService.Register("Jane", "Doe", "jane@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrEmailTaken)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo, nil)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:        "user-123",
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Password:  string(hashedPassword),
	}

	// Successful login
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	token, loggedIn, err := authService.Login("jane@example.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	// The token carries the user id claim
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, user.ID, claims["user_id"])

	// Wrong password and unknown email yield the identical error
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, _, errWrongPass := authService.Login("jane@example.com", "wrongpassword")
	assert.ErrorIs(t, errWrongPass, services.ErrInvalidCredentials)

	mockRepo.On("GetByEmail", "ghost@example.com").
		Return(nil, fmt.Errorf("user with email ghost@example.com: %w", gorm.ErrRecordNotFound)).Once()
	_, _, errUnknown := authService.Login("ghost@example.com", "password123")
	assert.ErrorIs(t, errUnknown, services.ErrInvalidCredentials)
	assert.Equal(t, errWrongPass.Error(), errUnknown.Error())

	mockRepo.AssertExpectations(t)
}

func TestAuthService_ChangePassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo, nil)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("oldpassword1"), bcrypt.DefaultCost)
	user := &models.User{ID: "user-123", Email: "jane@example.com", Password: string(hashedPassword)}

	// New password must satisfy the registration policy
	err := authService.ChangePassword("user-123", "oldpassword1", "weak")
	assert.ErrorIs(t, err, services.ErrWeakPassword)

	// Wrong old password
	mockRepo.On("GetByID", "user-123").Return(user, nil).Once()
	err = authService.ChangePassword("user-123", "not-the-old-one", "newpassword1")
	assert.ErrorIs(t, err, services.ErrWrongOldPassword)

	// Successful change replaces the digest
	mockRepo.On("GetByID", "user-123").Return(user, nil).Once()
	mockRepo.On("Update", user).Return(nil).Once()
	err = authService.ChangePassword("user-123", "oldpassword1", "newpassword1")
	assert.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("newpassword1")))

	mockRepo.AssertExpectations(t)
}

func TestAuthService_RequestPasswordReset(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockMailer := new(MockMailer)
	authService := newAuthService(mockRepo, mockMailer)

	user := &models.User{ID: "user-123", Email: "jane@example.com"}

	// Unknown email
	mockRepo.On("GetByEmail", "ghost@example.com").
		Return(nil, fmt.Errorf("user with email ghost@example.com: %w", gorm.ErrRecordNotFound)).Once()
	err := authService.RequestPasswordReset("ghost@example.com")
	assert.ErrorIs(t, err, services.ErrNotFound)

	// Successful dispatch carries the reset link
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	mockMailer.On("Send", user.Email, "Password Reset Request", mock.MatchedBy(func(body string) bool {
		return strings.Contains(body, "/reset-password/")
	})).Return(nil).Once()
	err = authService.RequestPasswordReset(user.Email)
	assert.NoError(t, err)

	// Mail delivery failure is reported as an upstream failure
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	mockMailer.On("Send", user.Email, "Password Reset Request", mock.Anything).
		Return(fmt.Errorf("smtp unreachable")).Once()
	err = authService.RequestPasswordReset(user.Email)
	assert.ErrorIs(t, err, services.ErrMailDelivery)

	mockRepo.AssertExpectations(t)
	mockMailer.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo, nil)

	// Valid access token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	validTokenString, _ := token.SignedString([]byte(testJWTSecret))

	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])

	// Garbage token
	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)

	// Expired token
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)

	// Reset tokens are not access tokens
	resetToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"purpose": "password_reset",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	resetTokenString, _ := resetToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(resetTokenString)
	assert.Error(t, err)
}
