package checkout

import (
	"storefront/internal/bookings"
	"storefront/internal/experiences"
	"storefront/internal/navigation"
	"storefront/internal/pricing"
	"storefront/internal/selection"
)

// DetailsView is everything the details screen renders
type DetailsView struct {
	SessionID      string                  `json:"sessionId"`
	Experience     *experiences.Experience `json:"experience"`
	State          selection.State         `json:"state"`
	Dates          []selection.DateOption  `json:"dates"`
	Times          []selection.TimeOption  `json:"times"`
	DateHint       string                  `json:"dateHint,omitempty"`
	SelectedDate   *string                 `json:"selectedDate"`
	SelectedTime   *string                 `json:"selectedTime"`
	Quantity       int                     `json:"quantity"`
	Summary        pricing.Summary         `json:"summary"`
	ConfirmEnabled bool                    `json:"confirmEnabled"`
	ConfirmLabel   string                  `json:"confirmLabel"`
}

// PromoMessage is the feedback line under the promo input
type PromoMessage struct {
	Text    string `json:"text"`
	IsError bool   `json:"isError"`
}

// CheckoutView is everything the checkout screen renders
type CheckoutView struct {
	SessionID        string                     `json:"sessionId"`
	Booking          navigation.CheckoutContext `json:"booking"`
	Summary          pricing.Summary            `json:"summary"`
	Discount         pricing.Discount           `json:"discount"`
	PromoCode        string                     `json:"promoCode"`
	AppliedPromoCode string                     `json:"appliedPromoCode,omitempty"`
	PromoMessage     *PromoMessage              `json:"promoMessage,omitempty"`
	PromoPending     bool                       `json:"promoPending"`
	SubmissionStatus bookings.Status            `json:"submissionStatus"`
	Submitting       bool                       `json:"submitting"`
	Errors           bookings.FieldErrors       `json:"errors"`
}

// ConfirmResponse hands the checkout context over to the checkout screen
type ConfirmResponse struct {
	NavToken string                     `json:"navToken"`
	Checkout navigation.CheckoutContext `json:"checkout"`
}

// SubmitResponse hands the booking reference over to the confirmation screen
type SubmitResponse struct {
	NavToken    string `json:"navToken"`
	ReferenceID string `json:"referenceId"`
}

// ConfirmationView is what the confirmation screen renders
type ConfirmationView struct {
	ReferenceID string `json:"referenceId"`
}
