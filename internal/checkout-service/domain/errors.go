package domain

import "fmt"

type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindNotFound
	KindInvalidState
	KindPaymentDeclined
)

// Error message constants for the checkout domain.
const (
	ErrMsgCurrencyRequired   = "currency is required"
	ErrMsgCurrencyInvalid    = "currency must be a three-letter ISO 4217 code"
	ErrMsgLineItemsRequired  = "line_items must not be empty"
	ErrMsgItemIDRequired     = "line item id is required"
	ErrMsgQuantityPositive   = "quantity must be positive"
	ErrMsgPriceNegative      = "price cannot be negative"
	ErrMsgSessionCompleted   = "checkout session is already completed"
	ErrMsgSessionNotReady    = "checkout session is not ready for completion"
	ErrMsgSessionNotFound    = "checkout session not found"
	ErrMsgProductNotFound    = "product not found"
	ErrMsgPaymentDeclined    = "payment was declined"
	ErrMsgCurrencyMismatch   = "item currency does not match checkout currency"
	ErrMsgUnsupportedHandler = "unsupported payment handler"
	ErrMsgLineItemIDConflict = "line item ids must be unique"
	ErrMsgAmountOverflow     = "line item amounts exceed the supported range"
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION"
	case KindNotFound:
		return "NOT_FOUND"
	case KindInvalidState:
		return "INVALID_STATE"
	case KindPaymentDeclined:
		return "PAYMENT_DECLINED"
	default:
		return "UNKNOWN"
	}
}

// Error is the typed failure returned by checkout operations. Callers branch on
// Kind (or errors.Is against the sentinels below), never on Message.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound) holds
// for every not-found failure regardless of its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrValidation      = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrNotFound        = &Error{Kind: KindNotFound, Message: "not found"}
	ErrInvalidState    = &Error{Kind: KindInvalidState, Message: "invalid state"}
	ErrPaymentDeclined = &Error{Kind: KindPaymentDeclined, Message: ErrMsgPaymentDeclined}
)

func NewValidation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NewValidationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewInvalidState(message string) *Error {
	return &Error{Kind: KindInvalidState, Message: message}
}

func NewInvalidStatef(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

func NewPaymentDeclinedf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindPaymentDeclined, Message: fmt.Sprintf(format, args...)}
}
