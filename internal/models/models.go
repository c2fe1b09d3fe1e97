package models

import "time"

// Transaction types
const (
	TransactionTypeAdd    = "add"
	TransactionTypeDeduct = "deduct"
)

// Sale statuses
const (
	SaleStatusActive  = "active"
	SaleStatusDeleted = "deleted"
)

// Transaction is one entry in a product's stock ledger. Entries are
// append-only: they are never edited or removed once recorded.
type Transaction struct {
	Type     string    `json:"type"`
	Quantity int       `json:"quantity"`
	Date     time.Time `json:"date"`
}

// Product represents a stocked item in the catalog
type Product struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	Category     string        `json:"category"`
	Description  string        `json:"description"`
	Price        float64       `json:"price"`
	Quantity     int           `json:"quantity"`
	Transactions []Transaction `json:"transactions"`
	Image        string        `json:"image,omitempty"`
}

// Sale records units sold from a product's stock. Sales are never hard
// deleted; cancellation flips Status to "deleted" and keeps the record.
type Sale struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"productId"`
	Quantity  int       `json:"quantity"`
	Date      time.Time `json:"date"`
	Status    string    `json:"status"`
}

// Active reports whether the sale still counts toward sales figures.
func (s Sale) Active() bool {
	return s.Status == SaleStatusActive
}

// Customer represents a customer record
type Customer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Collection names understood by the remote inventory service
const (
	CollectionProducts  = "products"
	CollectionSales     = "sales"
	CollectionCustomers = "customers"
)
