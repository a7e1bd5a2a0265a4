package bookings

import "strings"

// CheckoutForm is the customer-entered part of a booking
type CheckoutForm struct {
	FullName      string `json:"fullName" validate:"required"`
	Email         string `json:"email" validate:"required,contains=@"`
	AgreedToTerms bool   `json:"agreedToTerms" validate:"eq=true"`
}

// Normalize trims the free-text fields
func (f CheckoutForm) Normalize() CheckoutForm {
	f.FullName = strings.TrimSpace(f.FullName)
	f.Email = strings.TrimSpace(f.Email)
	return f
}
