package navigation

import "errors"

// Kind separates the token spaces of the two hand-offs
type Kind string

const (
	KindCheckout     Kind = "checkout"
	KindConfirmation Kind = "confirmation"
)

var (
	ErrContextNotFound = errors.New("navigation context not found")
	ErrInvalidContext  = errors.New("navigation context is incomplete")
)

// CheckoutContext is what the details view hands to checkout
type CheckoutContext struct {
	ExperienceID    string  `json:"experienceId"`
	ExperienceTitle string  `json:"experienceTitle"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`
	Quantity        int     `json:"quantity"`
	UnitPrice       float64 `json:"unitPrice"`
	Subtotal        float64 `json:"subtotal"`
	Taxes           float64 `json:"taxes"`
	Total           float64 `json:"total"`
}

// Valid reports whether checkout may be entered with this context
func (c *CheckoutContext) Valid() bool {
	return c != nil &&
		c.ExperienceID != "" &&
		c.ExperienceTitle != "" &&
		c.Date != "" &&
		c.Time != "" &&
		c.Quantity >= 1 &&
		c.UnitPrice >= 0
}

// ConfirmationContext is what checkout hands to the confirmation view
type ConfirmationContext struct {
	ReferenceID string `json:"referenceId"`
}
