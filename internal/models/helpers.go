package models

import "fmt"

// DefaultLowStockThreshold matches the dashboard's low-stock highlight cutoff.
const DefaultLowStockThreshold = 5

// DefaultImage is served when a product has no image of its own.
const DefaultImage = "default.webp"

// FormatCurrency renders an amount as a display string with two decimals.
func FormatCurrency(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// LowStock reports whether a quantity is at or under the given threshold.
// A threshold of zero or less falls back to DefaultLowStockThreshold.
func LowStock(quantity, threshold int) bool {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	return quantity <= threshold
}

// ImageURL resolves a product's image against the static asset origin,
// falling back to the default asset when the product has none.
func (p Product) ImageURL(assetBase string) string {
	image := p.Image
	if image == "" {
		image = DefaultImage
	}
	return fmt.Sprintf("%s/%s", assetBase, image)
}
