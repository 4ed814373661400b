package paymentservice

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/jcmexdev/ucp-commerce/internal/checkout-service/domain"
)

const (
	MockHandlerID   = "mock_payment_handler"
	MockHandlerName = "dev.ucp.mock_payment"

	TokenSuccess = "success_token"
	TokenFail    = "fail_token"
)

// Authorization is a request to hold funds for a checkout session.
type Authorization struct {
	SessionID  string
	Amount     int64
	Currency   string
	Instrument *domain.PaymentInstrument
}

// MockHandler stands in for a real payment processor. Nothing is charged; it
// only decides on the credential token and remembers what it authorised.
type MockHandler struct {
	mu             sync.Mutex
	authorizations map[string]Authorization // transactionID -> authorization
}

func NewMockHandler() *MockHandler {
	return &MockHandler{
		authorizations: make(map[string]Authorization),
	}
}

func (h *MockHandler) ID() string { return MockHandlerID }

// SupportedTokens lists the credential tokens advertised in the discovery profile.
func (h *MockHandler) SupportedTokens() []string {
	return []string{TokenSuccess, TokenFail}
}

// Authorize returns a transaction id. A missing instrument is treated as the
// success token so that plain demo checkouts complete.
func (h *MockHandler) Authorize(ctx context.Context, auth Authorization) (string, error) {
	token := TokenSuccess
	if auth.Instrument != nil {
		if auth.Instrument.HandlerID != "" && auth.Instrument.HandlerID != MockHandlerID {
			return "", domain.NewValidationf("%s: %s", domain.ErrMsgUnsupportedHandler, auth.Instrument.HandlerID)
		}
		if auth.Instrument.Token != "" {
			token = auth.Instrument.Token
		}
	}

	switch token {
	case TokenSuccess:
	case TokenFail:
		slog.InfoContext(ctx, "mock payment declined", "session_id", auth.SessionID, "amount", auth.Amount)
		return "", domain.NewPaymentDeclinedf("%s for checkout %s", domain.ErrMsgPaymentDeclined, auth.SessionID)
	default:
		return "", domain.NewValidationf("unsupported payment token %q", token)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	txID := uuid.NewString()
	h.authorizations[txID] = auth
	slog.InfoContext(ctx, "mock payment authorized",
		"session_id", auth.SessionID, "transaction_id", txID, "amount", auth.Amount, "currency", auth.Currency)
	return txID, nil
}

// Void releases an authorization. Voiding an unknown transaction is a no-op.
func (h *MockHandler) Void(ctx context.Context, transactionID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	auth, exists := h.authorizations[transactionID]
	if !exists {
		slog.WarnContext(ctx, "no mock authorization to void", "transaction_id", transactionID)
		return nil
	}
	delete(h.authorizations, transactionID)
	slog.InfoContext(ctx, "mock payment voided", "session_id", auth.SessionID, "transaction_id", transactionID)
	return nil
}

// Authorized reports whether transactionID is currently held.
func (h *MockHandler) Authorized(transactionID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.authorizations[transactionID]
	return ok
}

func (h *MockHandler) String() string {
	return fmt.Sprintf("%s(%s)", MockHandlerName, MockHandlerID)
}
