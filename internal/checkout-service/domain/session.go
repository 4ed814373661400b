package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

type Item struct {
	ID       string
	Title    string
	Price    int64 // minor units
	Currency string
	ImageURL string
}

type LineItem struct {
	ID       string
	Item     Item
	Quantity int64
	Totals   []Total
}

func (l LineItem) Subtotal() int64 {
	return l.Item.Price * l.Quantity
}

// Subtotal sums price x quantity over all line items, in minor units.
func Subtotal(items []LineItem) int64 {
	var subtotal int64
	for _, item := range items {
		subtotal += item.Subtotal()
	}
	return subtotal
}

var maxAmount = decimal.NewFromInt(math.MaxInt64)

// CheckedSubtotal is Subtotal with overflow detection. ok is false when a line
// subtotal or the running sum does not fit in int64 minor units.
func CheckedSubtotal(items []LineItem) (subtotal int64, ok bool) {
	sum := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromInt(item.Item.Price).Mul(decimal.NewFromInt(item.Quantity))
		if line.GreaterThan(maxAmount) {
			return 0, false
		}
		sum = sum.Add(line)
		if sum.GreaterThan(maxAmount) {
			return 0, false
		}
	}
	return sum.IntPart(), true
}

type TotalType string

const (
	TotalSubtotal TotalType = "subtotal"
	TotalDiscount TotalType = "discount"
	TotalTotal    TotalType = "total"
)

type Total struct {
	Type     TotalType
	Amount   int64
	Currency string
}

// Allocation is the share of a discount attributed to one line item.
type Allocation struct {
	LineItemID string
	Amount     int64
}

type AppliedDiscount struct {
	Code        string
	Title       string
	Amount      int64
	Automatic   bool
	Allocations []Allocation
}

// Discounts keeps the codes exactly as the client requested them next to the
// discounts that were actually applied. Unknown codes only appear in Codes.
type Discounts struct {
	Codes   []string
	Applied []AppliedDiscount
}

type PaymentRecord struct {
	HandlerID     string
	TransactionID string
	Amount        int64
	Currency      string
}

type CheckoutSession struct {
	ID          string
	Status      Status
	Currency    string
	LineItems   []LineItem
	Buyer       *Buyer
	Discounts   Discounts
	Totals      []Total
	Payment     *PaymentRecord
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

// GrandTotal returns the amount of the "total" entry, or zero if totals were never computed.
func (s *CheckoutSession) GrandTotal() int64 {
	for _, t := range s.Totals {
		if t.Type == TotalTotal {
			return t.Amount
		}
	}
	return 0
}

// Clone returns a deep copy so that snapshots handed out by the store never
// alias the stored record.
func (s *CheckoutSession) Clone() *CheckoutSession {
	if s == nil {
		return nil
	}
	out := *s

	if s.LineItems != nil {
		out.LineItems = make([]LineItem, len(s.LineItems))
		for i, li := range s.LineItems {
			li.Totals = cloneTotals(li.Totals)
			out.LineItems[i] = li
		}
	}
	if s.Buyer != nil {
		b := *s.Buyer
		out.Buyer = &b
	}
	if s.Discounts.Codes != nil {
		out.Discounts.Codes = append([]string(nil), s.Discounts.Codes...)
	}
	if s.Discounts.Applied != nil {
		out.Discounts.Applied = make([]AppliedDiscount, len(s.Discounts.Applied))
		for i, d := range s.Discounts.Applied {
			d.Allocations = append([]Allocation(nil), d.Allocations...)
			out.Discounts.Applied[i] = d
		}
	}
	out.Totals = cloneTotals(s.Totals)
	if s.Payment != nil {
		p := *s.Payment
		out.Payment = &p
	}
	if s.CompletedAt != nil {
		t := *s.CompletedAt
		out.CompletedAt = &t
	}
	return &out
}

func cloneTotals(in []Total) []Total {
	if in == nil {
		return nil
	}
	return append([]Total(nil), in...)
}
