package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/ucp-commerce/internal/catalog-service/domain"
)

func testCatalog() *Catalog {
	return NewCatalog([]domain.Product{
		{ID: "p1", Title: "Laptop Pro", Description: "Fast laptop", Price: 129900, Currency: "USD", Category: "electronics", InStock: true},
		{ID: "p2", Title: "Mouse", Description: "Wireless mouse for your laptop", Price: 2999, Currency: "USD", Category: "electronics", InStock: true},
		{ID: "p3", Title: "T-Shirt", Description: "Cotton", Price: 1999, Currency: "USD", Category: "apparel", InStock: false},
	})
}

func TestLoadDefault(t *testing.T) {
	catalog, err := LoadDefault()
	require.NoError(t, err)

	all := catalog.All(context.Background())
	assert.NotEmpty(t, all)

	laptop, err := catalog.Get(context.Background(), "laptop-pro-15")
	require.NoError(t, err)
	assert.Equal(t, int64(129900), laptop.Price)
	assert.Equal(t, "USD", laptop.Currency)
}

func TestLoad_InvalidJSON(t *testing.T) {
	_, err := Load([]byte("{not json"))
	assert.Error(t, err)
}

func TestGet(t *testing.T) {
	catalog := testCatalog()

	p, err := catalog.Get(context.Background(), "p2")
	require.NoError(t, err)
	assert.Equal(t, "Mouse", p.Title)

	_, err = catalog.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestGet_ReturnsCopy(t *testing.T) {
	catalog := testCatalog()

	p, _ := catalog.Get(context.Background(), "p1")
	p.Price = 1

	again, _ := catalog.Get(context.Background(), "p1")
	assert.Equal(t, int64(129900), again.Price)
}

func TestSearch(t *testing.T) {
	catalog := testCatalog()
	ctx := context.Background()

	tests := []struct {
		name     string
		query    string
		category string
		wantIDs  []string
	}{
		{"no filters", "", "", []string{"p1", "p2", "p3"}},
		{"query matches title and description", "LAPTOP", "", []string{"p1", "p2"}},
		{"category only", "", "apparel", []string{"p3"}},
		{"category is case-insensitive", "", "Electronics", []string{"p1", "p2"}},
		{"combined", "wireless", "electronics", []string{"p2"}},
		{"no match", "phone", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := catalog.Search(ctx, tt.query, tt.category)
			ids := make([]string, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestNewCatalog_DuplicateIDsReplace(t *testing.T) {
	catalog := NewCatalog([]domain.Product{
		{ID: "p1", Title: "Old"},
		{ID: "p1", Title: "New"},
	})

	assert.Len(t, catalog.All(context.Background()), 1)
	p, _ := catalog.Get(context.Background(), "p1")
	assert.Equal(t, "New", p.Title)
}
