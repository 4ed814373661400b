package ports

import (
	"context"

	catalogdomain "github.com/jcmexdev/ucp-commerce/internal/catalog-service/domain"
	"github.com/jcmexdev/ucp-commerce/internal/checkout-service/domain"
)

type CheckoutService interface {
	Create(ctx context.Context, req domain.CreateRequest) (*domain.CheckoutSession, error)
	Get(ctx context.Context, id string) (*domain.CheckoutSession, error)
	Update(ctx context.Context, id string, req domain.UpdateRequest) (*domain.CheckoutSession, error)
	Complete(ctx context.Context, id string, req domain.CompleteRequest) (*domain.CheckoutSession, error)
}

type Catalog interface {
	Get(ctx context.Context, id string) (*catalogdomain.Product, error)
	Search(ctx context.Context, query, category string) []catalogdomain.Product
}
