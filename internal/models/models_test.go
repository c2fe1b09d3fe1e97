package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductValidate(t *testing.T) {
	valid := Product{Name: "Espresso", Category: "coffee", Price: 3.5, Quantity: 10}
	assert.NoError(t, valid.Validate())

	cases := []struct {
		name    string
		mutate  func(*Product)
		wantErr string
	}{
		{"blank name", func(p *Product) { p.Name = "  " }, "name"},
		{"blank category", func(p *Product) { p.Category = "" }, "category"},
		{"zero price", func(p *Product) { p.Price = 0 }, "price"},
		{"negative quantity", func(p *Product) { p.Quantity = -1 }, "quantity"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := valid
			tc.mutate(&p)
			err := p.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestCustomerValidate(t *testing.T) {
	assert.NoError(t, Customer{Name: "Naledi", Email: "naledi@example.com"}.Validate())
	assert.Error(t, Customer{Email: "naledi@example.com"}.Validate())
	assert.Error(t, Customer{Name: "Naledi"}.Validate())
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$12.50", FormatCurrency(12.5))
	assert.Equal(t, "$0.00", FormatCurrency(0))
	assert.Equal(t, "$3.33", FormatCurrency(3.333))
}

func TestLowStock(t *testing.T) {
	assert.True(t, LowStock(5, 5))
	assert.True(t, LowStock(0, 5))
	assert.False(t, LowStock(6, 5))

	// Non-positive thresholds fall back to the default.
	assert.True(t, LowStock(DefaultLowStockThreshold, 0))
	assert.False(t, LowStock(DefaultLowStockThreshold+1, 0))
}

func TestImageURL(t *testing.T) {
	withImage := Product{Image: "beans.webp"}
	assert.Equal(t, "https://assets.example.com/beans.webp", withImage.ImageURL("https://assets.example.com"))

	var withoutImage Product
	assert.Equal(t, "https://assets.example.com/default.webp", withoutImage.ImageURL("https://assets.example.com"))
}

func TestSaleActive(t *testing.T) {
	assert.True(t, Sale{Status: SaleStatusActive}.Active())
	assert.False(t, Sale{Status: SaleStatusDeleted}.Active())
	assert.False(t, Sale{}.Active())
}
