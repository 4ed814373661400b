// Package discount turns requested discount codes into applied discounts with
// per-line-item allocations. Everything here is pure: the same items and codes
// always produce the same result.
package discount

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/ucp-commerce/internal/checkout-service/domain"
)

type Engine struct {
	registry *Registry
}

func NewEngine(registry *Registry) *Engine {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Engine{registry: registry}
}

// Apply prices every requested code against the original subtotal, in request
// order. Unknown codes are skipped. Duplicates each produce their own discount.
// The running sum of amounts is capped at the subtotal, so later codes may be
// reduced (down to zero) once the cart is fully discounted.
func (e *Engine) Apply(items []domain.LineItem, codes []string) []domain.AppliedDiscount {
	subtotal := domain.Subtotal(items)
	remaining := subtotal

	var applied []domain.AppliedDiscount
	for _, code := range codes {
		rule, ok := e.registry.Lookup(code)
		if !ok {
			continue
		}

		amount := rule.AmountFor(subtotal)
		if amount > remaining {
			amount = remaining
		}
		remaining -= amount

		applied = append(applied, domain.AppliedDiscount{
			Code:        rule.Code,
			Title:       rule.Title,
			Amount:      amount,
			Allocations: Allocate(items, amount),
		})
	}
	return applied
}

// Allocate splits amount across items in proportion to each item's share of
// the subtotal. Each share is floored and the leftover minor units go to the
// items with the largest remainders (ties: larger line subtotal, then the later
// item), so the allocations always sum to exactly amount.
func Allocate(items []domain.LineItem, amount int64) []domain.Allocation {
	if len(items) == 0 {
		return nil
	}

	allocations := make([]domain.Allocation, len(items))
	for i, item := range items {
		allocations[i] = domain.Allocation{LineItemID: item.ID}
	}

	subtotal := domain.Subtotal(items)
	if amount <= 0 || subtotal <= 0 {
		return allocations
	}

	total := decimal.NewFromInt(subtotal)
	share := decimal.NewFromInt(amount)
	remainders := make([]decimal.Decimal, len(items))

	var allocated int64
	for i, item := range items {
		q, r := share.Mul(decimal.NewFromInt(item.Subtotal())).QuoRem(total, 0)
		allocations[i].Amount = q.IntPart()
		remainders[i] = r
		allocated += allocations[i].Amount
	}

	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if c := remainders[ia].Cmp(remainders[ib]); c != 0 {
			return c > 0
		}
		if sa, sb := items[ia].Subtotal(), items[ib].Subtotal(); sa != sb {
			return sa > sb
		}
		return ia > ib
	})

	for leftover, k := amount-allocated, 0; leftover > 0; leftover, k = leftover-1, k+1 {
		allocations[order[k%len(order)]].Amount++
	}
	return allocations
}
