package bookings

import (
	"storefront/internal/experiences"
	"storefront/internal/pricing"
)

// bookedAtLayout matches an ISO-8601 UTC instant with millisecond precision
const bookedAtLayout = "2006-01-02T15:04:05.000Z"

// BookingRequest is the body of POST /bookings. A fresh request is built for
// every submit attempt.
type BookingRequest struct {
	Customer         Customer       `json:"customer"`
	Experience       ExperienceLine `json:"experience"`
	Price            Price          `json:"price"`
	PromoCodeApplied *string        `json:"promoCodeApplied"`
	BookedAt         string         `json:"bookedAt"`
}

type Customer struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// ExperienceLine is the booked experience and slot
type ExperienceLine struct {
	ID       experiences.ID `json:"id"`
	Title    string         `json:"title"`
	Date     string         `json:"date"`
	Time     string         `json:"time"`
	Quantity int            `json:"quantity"`
}

// Price is the price breakdown the customer saw when submitting
type Price struct {
	Subtotal float64 `json:"subtotal"`
	Taxes    float64 `json:"taxes"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// Input is everything outside the form needed to build a BookingRequest
type Input struct {
	ExperienceID    string
	ExperienceTitle string
	Date            string
	Time            string
	Quantity        int
	Summary         pricing.Summary
	// PromoCode is the last successfully applied code, empty when none
	PromoCode string
}

// Result is a confirmed booking
type Result struct {
	ReferenceID string
	Request     BookingRequest
}
