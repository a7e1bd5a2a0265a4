package bookings

import (
	"errors"
	"fmt"
)

// Form messages
const (
	FullNameRequiredMessage = "Full name is required"
	InvalidEmailMessage     = "Please enter a valid email"
	TermsRequiredMessage    = "You must agree to the terms"
	GenericFailureMessage   = "Booking failed. Please try again."
)

var (
	ErrSubmitInProgress = errors.New("booking submission already in progress")
	ErrAlreadyConfirmed = errors.New("booking already confirmed")

	errMissingBookingID = errors.New("collaborator returned no booking id")
)

// ValidationError is a form that failed local checks; nothing was sent
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid checkout form: %+v", e.Fields)
}

// SubmitError is a booking the collaborator did not confirm. Message is safe
// to show to the customer.
type SubmitError struct {
	Message string
	Err     error
}

func (e *SubmitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("booking failed: %v", e.Err)
	}
	return "booking failed: " + e.Message
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}
