package discount

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Kind enumerates the supported discount strategies.
type Kind string

const (
	// KindPercentage takes a fraction of the pre-discount subtotal.
	KindPercentage Kind = "percentage"
	// KindFixed takes a flat amount, capped at the subtotal.
	KindFixed Kind = "fixed"
)

// Rule describes how a single discount code is priced.
type Rule struct {
	Code    string
	Title   string
	Kind    Kind
	Percent decimal.Decimal // KindPercentage: 0.10 == 10%
	Amount  int64           // KindFixed: minor units
}

// AmountFor returns the discount this rule grants on subtotal, in minor units,
// never more than subtotal. Percentages are floored to whole minor units.
func (r Rule) AmountFor(subtotal int64) int64 {
	if subtotal <= 0 {
		return 0
	}
	var amount int64
	switch r.Kind {
	case KindPercentage:
		amount = decimal.NewFromInt(subtotal).Mul(r.Percent).Floor().IntPart()
	case KindFixed:
		amount = r.Amount
	}
	if amount < 0 {
		return 0
	}
	if amount > subtotal {
		return subtotal
	}
	return amount
}

// Registry is a fixed, case-insensitive lookup of discount rules.
type Registry struct {
	rules map[string]Rule
}

func NewRegistry(rules ...Rule) *Registry {
	r := &Registry{rules: make(map[string]Rule, len(rules))}
	for _, rule := range rules {
		r.rules[normalize(rule.Code)] = rule
	}
	return r
}

// DefaultRegistry holds the demo store's codes.
func DefaultRegistry() *Registry {
	return NewRegistry(
		Rule{Code: "10OFF", Title: "10% Off", Kind: KindPercentage, Percent: decimal.NewFromInt(10).Shift(-2)},
		Rule{Code: "SAVE20", Title: "20% Off", Kind: KindPercentage, Percent: decimal.NewFromInt(20).Shift(-2)},
		Rule{Code: "FREESHIP", Title: "Free Shipping", Kind: KindFixed, Amount: 500},
	)
}

func (r *Registry) Lookup(code string) (Rule, bool) {
	rule, ok := r.rules[normalize(code)]
	return rule, ok
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
