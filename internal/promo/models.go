package promo

import (
	"storefront/internal/experiences"
	"storefront/internal/pricing"
)

// ErrorMessage is shown when a rejection carries no collaborator message
const ErrorMessage = "Error validating code"

// AppliedMessage is shown when an accepted code carries no collaborator message
const AppliedMessage = "Promo code applied"

// ValidationRequest is the body of POST /promo/validate
type ValidationRequest struct {
	PromoCode    string         `json:"promoCode"`
	ExperienceID experiences.ID `json:"experienceId,omitempty"`
}

// ValidationResponse is the collaborator's answer for a promo code
type ValidationResponse struct {
	Valid         bool           `json:"valid"`
	Message       string         `json:"message"`
	DiscountValue *float64       `json:"discountValue"`
	Type          string         `json:"type"`
	ExperienceID  experiences.ID `json:"experienceId,omitempty"`
}

// grant is the part of an accepted response that becomes a discount
type grant struct {
	Type  string   `validate:"required,oneof=flat percentage"`
	Value *float64 `validate:"required,gte=0"`
}

// Outcome is the result of applying one code. A rejected outcome always
// carries the reset discount.
type Outcome struct {
	Discount pricing.Discount `json:"discount"`
	Code     string           `json:"code,omitempty"`
	Message  string           `json:"message"`
	IsError  bool             `json:"isError"`
}
