package domain

// LineItemInput is a line item as supplied by a client. Title and Price are only
// used when ItemID does not resolve in the catalog.
type LineItemInput struct {
	ID       string
	ItemID   string
	Title    string
	Price    *int64
	Quantity int64
}

type CreateRequest struct {
	Currency  string
	LineItems []LineItemInput
	Buyer     *Buyer
}

// UpdateRequest replaces session contents. A nil field keeps the current value;
// a non-nil field replaces it wholesale (an empty DiscountCodes clears all codes).
type UpdateRequest struct {
	LineItems     []LineItemInput
	Buyer         *Buyer
	DiscountCodes []string
}

type PaymentInstrument struct {
	HandlerID string
	Token     string
}

type CompleteRequest struct {
	Payment *PaymentInstrument
}
