package pricing

// Compute maps (unit price, quantity, taxes, discount) to a price summary.
//
// The discount amount is taken off the subtotal only (percentages never apply to
// taxes) and is clamped into [0, subtotal+taxes], so the total is never negative.
func Compute(unitPrice float64, quantity int, taxes float64, discount Discount) Summary {
	subtotal := unitPrice * float64(quantity)

	amount := DiscountAmount(subtotal, discount)
	if ceiling := subtotal + taxes; amount > ceiling {
		amount = ceiling
	}
	if amount < 0 {
		amount = 0
	}

	return Summary{
		UnitPrice: unitPrice,
		Quantity:  quantity,
		Subtotal:  subtotal,
		Taxes:     taxes,
		Discount:  amount,
		Total:     subtotal + taxes - amount,
	}
}

// DiscountAmount is the unclamped reduction a discount yields on subtotal
func DiscountAmount(subtotal float64, discount Discount) float64 {
	switch discount.Kind {
	case DiscountFlat:
		return discount.Value
	case DiscountPercentage:
		return subtotal * discount.Value / 100
	default:
		return 0
	}
}
