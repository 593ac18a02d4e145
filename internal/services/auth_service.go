package services

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"ordertrack/internal/models"
	"ordertrack/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Mailer is the outbound mail capability the auth service depends on.
// Delivery is a single synchronous attempt with no retry.
type Mailer interface {
	Send(to, subject, body string) error
}

// resetPurpose marks password-reset tokens so they cannot be replayed as
// access tokens by the auth middleware.
const resetPurpose = "password_reset"

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo    repositories.UserRepository
	mailer      Mailer
	jwtSecret   []byte
	tokenDurat  time.Duration // Duration for which an access JWT is valid
	resetDurat  time.Duration // Duration for which a reset JWT is valid
	frontendURL string
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, mailer Mailer, jwtSecret, frontendURL string) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		mailer:      mailer,
		jwtSecret:   []byte(jwtSecret),
		tokenDurat:  24 * time.Hour,
		resetDurat:  time.Hour,
		frontendURL: frontendURL,
	}
}

// validPassword enforces the registration password policy: at least 8
// characters including a digit.
func validPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	return strings.ContainsAny(password, "0123456789")
}

// Register creates a user with a bcrypt digest of the raw password and
// returns the user together with a fresh access token. A duplicate email is
// detected by the insert itself, not pre-checked.
func (s *AuthService) Register(firstName, lastName, email, password string) (*models.User, string, error) {
	if !emailPattern.MatchString(email) {
		return nil, "", ErrInvalidEmail
	}
	if !validPassword(password) {
		return nil, "", ErrWeakPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  string(hashedPassword),
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("failed to register user: %w", err)
	}

	token, err := s.generateToken(user.ID, s.tokenDurat, "")
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login authenticates a user by email and password and returns a JWT token.
// Unknown email and wrong password produce the identical error so the
// response does not reveal which one failed.
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(user.ID, s.tokenDurat, "")
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ChangePassword verifies the old password and replaces the stored digest.
// The new password must satisfy the registration policy.
func (s *AuthService) ChangePassword(userID, oldPassword, newPassword string) error {
	if !validPassword(newPassword) {
		return ErrWeakPassword
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return ErrWrongOldPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return ErrWrongOldPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}
	return nil
}

// RequestPasswordReset issues a short-lived reset token bound to the user and
// mails a reset link. A delivery failure is reported to the caller but does
// not invalidate the token that was already issued.
func (s *AuthService) RequestPasswordReset(email string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return fmt.Errorf("no user found with that email: %w", ErrNotFound)
	}

	resetToken, err := s.generateToken(user.ID, s.resetDurat, resetPurpose)
	if err != nil {
		return err
	}
	resetURL := fmt.Sprintf("%s/reset-password/%s", s.frontendURL, resetToken)
	body := fmt.Sprintf("<p>To reset your password, <a href='%s'>click here</a>.</p>", resetURL)

	if err := s.mailer.Send(email, "Password Reset Request", body); err != nil {
		log.Printf("Password reset mail to %s failed: %v", email, err)
		return fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}
	return nil
}

// generateToken signs an HS256 JWT for the user. purpose is empty for access
// tokens and resetPurpose for password-reset tokens.
func (s *AuthService) generateToken(userID string, duration time.Duration, purpose string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(duration).Unix(),
		"iat":     time.Now().Unix(),
	}
	if purpose != "" {
		claims["purpose"] = purpose
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates an access JWT, returning the claims if
// valid. Reset tokens are rejected here; they are only honored by the
// password-reset flow.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if purpose, _ := claims["purpose"].(string); purpose != "" {
		return nil, fmt.Errorf("invalid token: not an access token")
	}
	return claims, nil
}
