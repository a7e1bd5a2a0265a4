package pricing

// DefaultTaxes is the fixed tax charged per booking, in currency units
const DefaultTaxes = 59

type DiscountKind string

const (
	DiscountNone       DiscountKind = "none"
	DiscountFlat       DiscountKind = "flat"
	DiscountPercentage DiscountKind = "percentage"
)

// IsValid checks if the discount kind is known
func (k DiscountKind) IsValid() bool {
	switch k {
	case DiscountNone, DiscountFlat, DiscountPercentage:
		return true
	}
	return false
}

func (k DiscountKind) String() string {
	return string(k)
}

// Discount is a flat or percentage reduction applied to the subtotal
type Discount struct {
	Kind  DiscountKind `json:"kind"`
	Value float64      `json:"value"`
}

// NoDiscount is the reset state every failed promo application returns to
func NoDiscount() Discount {
	return Discount{Kind: DiscountNone, Value: 0}
}

// Summary is the derived price breakdown of a checkout. It is never stored;
// callers recompute it on every quantity or discount change.
type Summary struct {
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
	Taxes     float64 `json:"taxes"`
	Discount  float64 `json:"discount"`
	Total     float64 `json:"total"`
}
