package models

import (
	"fmt"
	"strings"
)

func notEmpty(value string) bool {
	return strings.TrimSpace(value) != ""
}

// Validate checks the fields a product form must fill in before the
// record is submitted.
func (p Product) Validate() error {
	if !notEmpty(p.Name) {
		return fmt.Errorf("product name is required")
	}
	if !notEmpty(p.Category) {
		return fmt.Errorf("product category is required")
	}
	if p.Price <= 0 {
		return fmt.Errorf("product price must be positive")
	}
	if p.Quantity < 0 {
		return fmt.Errorf("product quantity must not be negative")
	}
	return nil
}

// Validate checks the fields a customer form must fill in.
func (c Customer) Validate() error {
	if !notEmpty(c.Name) {
		return fmt.Errorf("customer name is required")
	}
	if !notEmpty(c.Email) {
		return fmt.Errorf("customer email is required")
	}
	return nil
}
