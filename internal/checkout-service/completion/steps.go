package completion

import (
	"context"
	"errors"
	"fmt"

	catalogapp "github.com/jcmexdev/ucp-commerce/internal/catalog-service/app"
	catalogdomain "github.com/jcmexdev/ucp-commerce/internal/catalog-service/domain"
	"github.com/jcmexdev/ucp-commerce/internal/checkout-service/domain"
	paymentservice "github.com/jcmexdev/ucp-commerce/internal/payment-service/app"
)

type ProductLookup interface {
	Get(ctx context.Context, id string) (*catalogdomain.Product, error)
}

type PaymentHandler interface {
	ID() string
	Authorize(ctx context.Context, auth paymentservice.Authorization) (string, error)
	Void(ctx context.Context, transactionID string) error
}

// --- StockCheckStep ---

// StockCheckStep refuses completion when a catalog product in the cart is out
// of stock. Items the catalog does not know were accepted as supplied and are
// not checked.
type StockCheckStep struct {
	catalog ProductLookup
	items   []domain.LineItem
}

func NewStockCheckStep(catalog ProductLookup, items []domain.LineItem) *StockCheckStep {
	return &StockCheckStep{catalog: catalog, items: items}
}

func (s *StockCheckStep) Name() string { return "Stock_Check_Step" }

func (s *StockCheckStep) Execute(ctx context.Context) error {
	for _, li := range s.items {
		product, err := s.catalog.Get(ctx, li.Item.ID)
		if errors.Is(err, catalogapp.ErrProductNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("stock check for %s: %w", li.Item.ID, err)
		}
		if !product.InStock {
			return domain.NewInvalidStatef("product %s is out of stock", li.Item.ID)
		}
	}
	return nil
}

func (s *StockCheckStep) Compensate(ctx context.Context) error {
	// Nothing is reserved, so there is nothing to release.
	return nil
}

// --- PaymentStep ---

type PaymentStep struct {
	handler       PaymentHandler
	auth          paymentservice.Authorization
	transactionID string
}

func NewPaymentStep(handler PaymentHandler, auth paymentservice.Authorization) *PaymentStep {
	return &PaymentStep{handler: handler, auth: auth}
}

func (s *PaymentStep) Name() string { return "Payment_Authorization_Step" }

func (s *PaymentStep) Execute(ctx context.Context) error {
	txID, err := s.handler.Authorize(ctx, s.auth)
	if err != nil {
		return err
	}
	s.transactionID = txID
	return nil
}

func (s *PaymentStep) Compensate(ctx context.Context) error {
	if s.transactionID == "" {
		return nil
	}
	return s.handler.Void(ctx, s.transactionID)
}

// Record describes the authorization once Execute has succeeded.
func (s *PaymentStep) Record() *domain.PaymentRecord {
	if s.transactionID == "" {
		return nil
	}
	return &domain.PaymentRecord{
		HandlerID:     s.handler.ID(),
		TransactionID: s.transactionID,
		Amount:        s.auth.Amount,
		Currency:      s.auth.Currency,
	}
}
