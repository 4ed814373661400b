// Package totals computes the ordered totals shown for a checkout and for each of its line items.
package totals

import "github.com/jcmexdev/ucp-commerce/internal/checkout-service/domain"

// Compute returns [subtotal, discount, total] for the whole checkout. The
// discount entry is omitted when nothing was discounted. The discount is capped
// at the subtotal so the total is never negative.
func Compute(items []domain.LineItem, applied []domain.AppliedDiscount, currency string) []domain.Total {
	subtotal := domain.Subtotal(items)

	var discount int64
	for _, d := range applied {
		discount += d.Amount
	}
	return build(subtotal, discount, currency)
}

// ComputeLine returns the same sequence for one line item, using only the
// allocations that target it.
func ComputeLine(item domain.LineItem, applied []domain.AppliedDiscount, currency string) []domain.Total {
	var discount int64
	for _, d := range applied {
		for _, a := range d.Allocations {
			if a.LineItemID == item.ID {
				discount += a.Amount
			}
		}
	}
	return build(item.Subtotal(), discount, currency)
}

func build(subtotal, discount int64, currency string) []domain.Total {
	if discount > subtotal {
		discount = subtotal
	}
	if discount < 0 {
		discount = 0
	}
	total := subtotal - discount
	if total < 0 {
		total = 0
	}

	out := make([]domain.Total, 0, 3)
	out = append(out, domain.Total{Type: domain.TotalSubtotal, Amount: subtotal, Currency: currency})
	if discount > 0 {
		out = append(out, domain.Total{Type: domain.TotalDiscount, Amount: discount, Currency: currency})
	}
	out = append(out, domain.Total{Type: domain.TotalTotal, Amount: total, Currency: currency})
	return out
}
