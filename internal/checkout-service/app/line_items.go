package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	catalogapp "github.com/jcmexdev/ucp-commerce/internal/catalog-service/app"
	"github.com/jcmexdev/ucp-commerce/internal/checkout-service/domain"
)

func normalizeCurrency(currency string) (string, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return "", domain.NewValidation(domain.ErrMsgCurrencyRequired)
	}
	if len(currency) != 3 {
		return "", domain.NewValidation(domain.ErrMsgCurrencyInvalid)
	}
	for _, r := range currency {
		if r < 'A' || r > 'Z' {
			return "", domain.NewValidation(domain.ErrMsgCurrencyInvalid)
		}
	}
	return currency, nil
}

func (e *Engine) resolveLineItems(ctx context.Context, currency string, inputs []domain.LineItemInput) ([]domain.LineItem, error) {
	items := make([]domain.LineItem, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	for _, in := range inputs {
		li, err := e.resolveLineItem(ctx, currency, in)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[li.ID]; dup {
			return nil, domain.NewValidationf("%s: %s", domain.ErrMsgLineItemIDConflict, li.ID)
		}
		seen[li.ID] = struct{}{}
		items = append(items, li)
	}
	if _, ok := domain.CheckedSubtotal(items); !ok {
		return nil, domain.NewValidation(domain.ErrMsgAmountOverflow)
	}
	return items, nil
}

// resolveLineItem prices one input. Catalog data wins over anything the client
// sent; items the catalog does not know are accepted as supplied.
func (e *Engine) resolveLineItem(ctx context.Context, currency string, in domain.LineItemInput) (domain.LineItem, error) {
	itemID := strings.TrimSpace(in.ItemID)
	if itemID == "" {
		return domain.LineItem{}, domain.NewValidation(domain.ErrMsgItemIDRequired)
	}

	quantity := in.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return domain.LineItem{}, domain.NewValidationf("%s: %s", domain.ErrMsgQuantityPositive, itemID)
	}

	item, err := e.lookupItem(ctx, itemID, currency, in)
	if err != nil {
		return domain.LineItem{}, err
	}
	if item.Currency != currency {
		return domain.LineItem{}, domain.NewValidationf("%s: %s is priced in %s, checkout is %s",
			domain.ErrMsgCurrencyMismatch, itemID, item.Currency, currency)
	}

	id := in.ID
	if id == "" {
		id = e.newID()
	}
	return domain.LineItem{ID: id, Item: item, Quantity: quantity}, nil
}

func (e *Engine) lookupItem(ctx context.Context, itemID, currency string, in domain.LineItemInput) (domain.Item, error) {
	product, err := e.catalog.Get(ctx, itemID)
	if err == nil {
		return domain.Item{
			ID:       product.ID,
			Title:    product.Title,
			Price:    product.Price,
			Currency: strings.ToUpper(product.Currency),
			ImageURL: product.ImageURL,
		}, nil
	}
	if !errors.Is(err, catalogapp.ErrProductNotFound) {
		return domain.Item{}, fmt.Errorf("catalog lookup %s: %w", itemID, err)
	}

	if in.Price == nil {
		return domain.Item{}, domain.NewNotFoundf("%s: %s", domain.ErrMsgProductNotFound, itemID)
	}
	if *in.Price < 0 {
		return domain.Item{}, domain.NewValidationf("%s: %s", domain.ErrMsgPriceNegative, itemID)
	}
	title := in.Title
	if title == "" {
		title = itemID
	}
	return domain.Item{ID: itemID, Title: title, Price: *in.Price, Currency: currency}, nil
}
