package models

import "time"

// Event types
const (
	EventTypeProductCreated = "PRODUCT_CREATED"
	EventTypeProductUpdated = "PRODUCT_UPDATED"
	EventTypeProductDeleted = "PRODUCT_DELETED"
	EventTypeSaleRecorded   = "SALE_RECORDED"
	EventTypeSaleCancelled  = "SALE_CANCELLED"
	EventTypeStockAdjusted  = "STOCK_ADJUSTED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// ProductCreatedEvent published when a product is added to the catalog
type ProductCreatedEvent struct {
	BaseEvent
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}

// ProductUpdatedEvent published when a product record is overwritten
type ProductUpdatedEvent struct {
	BaseEvent
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// ProductDeletedEvent published when a product is hard deleted
type ProductDeletedEvent struct {
	BaseEvent
	ProductID int64 `json:"product_id"`
}

// SaleRecordedEvent published after a sale and its stock deduction are written
type SaleRecordedEvent struct {
	BaseEvent
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
	Remaining int   `json:"remaining"`
}

// SaleCancelledEvent published when a sale is soft deleted
type SaleCancelledEvent struct {
	BaseEvent
	SaleID    int64 `json:"sale_id"`
	ProductID int64 `json:"product_id"`
}

// StockAdjustedEvent published after a manual stock add or deduct
type StockAdjustedEvent struct {
	BaseEvent
	ProductID int64  `json:"product_id"`
	Type      string `json:"type"`
	Quantity  int    `json:"quantity"`
	Remaining int    `json:"remaining"`
}
