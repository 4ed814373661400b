// Package app serves the read-only product catalog that checkout resolves line items against.
package app

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jcmexdev/ucp-commerce/internal/catalog-service/domain"
)

//go:embed products.json
var defaultProducts []byte

var ErrProductNotFound = errors.New("product not found")

type Catalog struct {
	products []domain.Product
	byID     map[string]int
}

// NewCatalog indexes products by id. Later duplicates replace earlier ones.
func NewCatalog(products []domain.Product) *Catalog {
	c := &Catalog{byID: make(map[string]int, len(products))}
	for _, p := range products {
		if i, ok := c.byID[p.ID]; ok {
			c.products[i] = p
			continue
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c
}

// LoadDefault builds the catalog bundled with the binary.
func LoadDefault() (*Catalog, error) {
	return Load(defaultProducts)
}

func Load(data []byte) (*Catalog, error) {
	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode product catalog: %w", err)
	}
	return NewCatalog(products), nil
}

func (c *Catalog) Get(ctx context.Context, id string) (*domain.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	p := c.products[i]
	return &p, nil
}

// Search filters by a case-insensitive substring of title or description and
// by category. Empty filters match everything.
func (c *Catalog) Search(ctx context.Context, query, category string) []domain.Product {
	query = strings.ToLower(strings.TrimSpace(query))
	category = strings.TrimSpace(category)

	results := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Title), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		results = append(results, p)
	}
	return results
}

func (c *Catalog) All(ctx context.Context) []domain.Product {
	return c.Search(ctx, "", "")
}
