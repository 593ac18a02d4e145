package services

import "errors"

// Sentinel errors returned by the service layer. Handlers classify them with
// errors.Is to pick an HTTP status; the messages double as the human-readable
// response text.
var (
	// Identity / auth
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrWeakPassword       = errors.New("password must be at least 8 characters long and include a number")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWrongOldPassword   = errors.New("incorrect old password")
	ErrMailDelivery       = errors.New("failed to send email")

	// Resource resolution. Ownership mismatches on owner operations collapse
	// into ErrNotFound so callers cannot probe for existence.
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied, admin access required")

	// Order lifecycle
	ErrOrderNotModifiable = errors.New("order can only be modified before shipping")
	ErrOrderNotCancelable = errors.New("only pending orders can be canceled")
	ErrOrderNotDeletable  = errors.New("only pending orders can be deleted")
	ErrOrderFinal         = errors.New("order has already been delivered or canceled, no further status updates are allowed")
	ErrOrderNotRatable    = errors.New("you can only rate orders that have been delivered")
	ErrOrderNotReviewable = errors.New("you can only review orders that have been delivered")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrEmptyReview        = errors.New("review is required")

	// Shipments
	ErrDuplicateTracking = errors.New("tracking number already in use")
	ErrShipmentExists    = errors.New("a shipment already exists for this order")
	ErrShipmentForbidden = errors.New("unauthorized to track this shipment")
	ErrInvalidDate       = errors.New("delivery date must use the format YYYY-MM-DD HH:MM:SS")
	ErrOrderNotShipped   = errors.New("order has not been shipped yet")

	// Profile
	ErrConfirmationRequired = errors.New(`you must confirm deletion by setting "confirm": "yes"`)
	ErrNothingToUpdate      = errors.New("at least one field (first_name or last_name) must be provided for update")
)
