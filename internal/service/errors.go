package service

import (
	"errors"
	"fmt"
)

// ErrConflict is the base error for business rule violations. These are
// never retryable; callers get them back as-is.
var ErrConflict = errors.New("conflict")

// ErrValidation is the base error for malformed or inconsistent input.
var ErrValidation = errors.New("validation failed")

// Conflict sentinels, all matching errors.Is(err, ErrConflict)
var (
	ErrDuplicateBooking         = fmt.Errorf("%w: user already has a booking for this event", ErrConflict)
	ErrCapacityExceeded         = fmt.Errorf("%w: no available slots for this event", ErrConflict)
	ErrRegistrationClosed       = fmt.Errorf("%w: registration is closed for this event", ErrConflict)
	ErrBookingNotCancellable    = fmt.Errorf("%w: booking cannot be cancelled", ErrConflict)
	ErrInvalidStatusTransition  = fmt.Errorf("%w: status transition not allowed", ErrConflict)
	ErrInvalidPaymentTransition = fmt.Errorf("%w: payment status transition not allowed", ErrConflict)
	ErrCategoryNameTaken        = fmt.Errorf("%w: category name already exists", ErrConflict)
	ErrEmailTaken               = fmt.Errorf("%w: email already registered", ErrConflict)
	ErrCategoryHasEvents        = fmt.Errorf("%w: category still has events", ErrConflict)
	ErrVenueHasEvents           = fmt.Errorf("%w: venue still has events", ErrConflict)
)

// Validation sentinels
var (
	ErrInvalidRegistrationWindow = fmt.Errorf("%w: registration start must precede registration end", ErrValidation)
	ErrUnknownReference          = fmt.Errorf("%w: referenced record does not exist", ErrValidation)
	ErrUnknownEnumValue          = fmt.Errorf("%w: unknown enum value", ErrValidation)
)
