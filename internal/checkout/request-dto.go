package checkout

import "storefront/internal/bookings"

type SelectDateRequest struct {
	Date string `json:"date" binding:"required"`
}

type SelectTimeRequest struct {
	Time string `json:"time" binding:"required"`
}

// QuantityRequest sets the quantity directly or steps it by one
type QuantityRequest struct {
	Quantity *int   `json:"quantity"`
	Action   string `json:"action" binding:"omitempty,oneof=increment decrement"`
}

type OpenCheckoutRequest struct {
	NavToken string `json:"navToken"`
}

type ApplyPromoRequest struct {
	PromoCode string `json:"promoCode"`
}

type SubmitRequest struct {
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	AgreedToTerms bool   `json:"agreedToTerms"`
}

func (r SubmitRequest) Form() bookings.CheckoutForm {
	return bookings.CheckoutForm{
		FullName:      r.FullName,
		Email:         r.Email,
		AgreedToTerms: r.AgreedToTerms,
	}
}
