package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/Thabana01/wings-cafe-Inventory/internal/broker"
	"github.com/Thabana01/wings-cafe-Inventory/internal/client"
	"github.com/Thabana01/wings-cafe-Inventory/internal/models"
	"github.com/Thabana01/wings-cafe-Inventory/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// idempotencyTTL bounds how long a sale attempt key is remembered.
const idempotencyTTL = 24 * time.Hour

// Service runs the mutating inventory workflows: product CRUD, sale
// recording and cancellation, stock adjustment, and customer CRUD. Every
// mutation computes the new record locally, submits it as a full-record
// write, then re-fetches the affected collections so the cache reflects the
// authoritative state.
type Service struct {
	api    *client.Client
	state  *State
	events broker.Publisher
	idem   IdempotencyRegistry
	logger *zap.Logger
}

// NewService creates a new inventory service
func NewService(api *client.Client, state *State, events broker.Publisher, idem IdempotencyRegistry) *Service {
	if events == nil {
		events = broker.NopPublisher{}
	}
	if idem == nil {
		idem = NewMemoryRegistry()
	}
	return &Service{
		api:    api,
		state:  state,
		events: events,
		idem:   idem,
		logger: util.GetLogger(),
	}
}

// State exposes the cached collections for read-only callers.
func (s *Service) State() *State {
	return s.state
}

// RefreshAll re-fetches every collection.
func (s *Service) RefreshAll(ctx context.Context) {
	s.state.Refresh(ctx, models.CollectionProducts)
	s.state.Refresh(ctx, models.CollectionSales)
	s.state.Refresh(ctx, models.CollectionCustomers)
}

// AddProduct submits a new product with an empty transaction history.
// There is no duplicate check; the service assigns the id.
func (s *Service) AddProduct(ctx context.Context, product models.Product) error {
	ctx, span := util.StartSpan(ctx, "Service.AddProduct")
	defer span.End()

	if err := product.Validate(); err != nil {
		return err
	}

	product.ID = 0
	product.Transactions = []models.Transaction{}

	if err := s.api.CreateProduct(ctx, product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	util.ProductsCreatedTotal.Inc()
	s.logger.Info("Product created", zap.String("name", product.Name))

	s.publishProductCreated(ctx, product)
	s.state.Refresh(ctx, models.CollectionProducts)
	return nil
}

// UpdateProduct overwrites the full product record at id. The caller must
// supply the complete intended state; this is not a patch.
func (s *Service) UpdateProduct(ctx context.Context, id int64, product models.Product) error {
	ctx, span := util.StartSpan(ctx, "Service.UpdateProduct")
	defer span.End()

	if err := product.Validate(); err != nil {
		return err
	}

	if err := s.api.ReplaceProduct(ctx, id, product); err != nil {
		return fmt.Errorf("failed to update product %d: %w", id, err)
	}

	s.logger.Info("Product updated", zap.Int64("product_id", id))

	s.publishProductUpdated(ctx, id, product.Quantity)
	s.state.Refresh(ctx, models.CollectionProducts)
	return nil
}

// DeleteProduct deletes the product permanently. Sales referencing it keep
// their productId; readers must tolerate the dangling reference.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	ctx, span := util.StartSpan(ctx, "Service.DeleteProduct")
	defer span.End()

	if err := s.api.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}

	util.ProductsDeletedTotal.Inc()
	s.logger.Info("Product deleted", zap.Int64("product_id", id))

	s.publishProductDeleted(ctx, id)
	s.state.Refresh(ctx, models.CollectionProducts)
	return nil
}

// RecordSaleRequest asks for quantity units of the given product.
type RecordSaleRequest struct {
	ProductID int64
	Quantity  int
	// IdempotencyKey identifies the attempt across retries. Generated when
	// empty.
	IdempotencyKey string
}

// RecordSaleResult reports the outcome of a recorded sale.
type RecordSaleResult struct {
	ProductID    int64
	QuantitySold int
	Remaining    int
	// Duplicate is set when the idempotency key had already been marked and
	// no write was performed.
	Duplicate bool
}

// RecordSale checks the request against the cached product collection,
// deducts stock, and writes the sale. The product overwrite and the sale
// create are two independent writes; when the second fails the first is
// compensated by resubmitting the original product state.
func (s *Service) RecordSale(ctx context.Context, req RecordSaleRequest) (*RecordSaleResult, error) {
	ctx, span := util.StartSpan(ctx, "Service.RecordSale")
	defer span.End()

	if req.Quantity <= 0 {
		util.SalesRejectedTotal.WithLabelValues("invalid_quantity").Inc()
		return nil, ErrInvalidQuantity
	}

	product, ok := s.state.FindProduct(req.ProductID)
	if !ok {
		util.SalesRejectedTotal.WithLabelValues("product_not_found").Inc()
		return nil, ErrProductNotFound
	}

	if req.Quantity > product.Quantity {
		util.SalesRejectedTotal.WithLabelValues("insufficient_stock").Inc()
		return nil, ErrInsufficientStock
	}

	if req.IdempotencyKey == "" {
		req.IdempotencyKey = uuid.New().String()
	}

	seen, err := s.idem.Seen(ctx, req.IdempotencyKey)
	if err != nil {
		s.logger.Warn("Idempotency lookup failed, proceeding without it",
			zap.String("idempotency_key", req.IdempotencyKey),
			zap.Error(err))
	}
	if seen {
		s.logger.Info("Duplicate sale attempt detected",
			zap.String("idempotency_key", req.IdempotencyKey),
			zap.Int64("product_id", req.ProductID))
		return &RecordSaleResult{
			ProductID:    req.ProductID,
			QuantitySold: req.Quantity,
			Duplicate:    true,
		}, nil
	}

	now := time.Now().UTC()
	updated := product
	updated.Quantity = product.Quantity - req.Quantity
	updated.Transactions = appendTransaction(product.Transactions, models.Transaction{
		Type:     models.TransactionTypeDeduct,
		Quantity: req.Quantity,
		Date:     now,
	})

	if err := s.api.ReplaceProduct(ctx, product.ID, updated); err != nil {
		return nil, fmt.Errorf("failed to deduct stock for product %d: %w", product.ID, err)
	}

	sale := models.Sale{
		ProductID: product.ID,
		Quantity:  req.Quantity,
		Date:      now,
		Status:    models.SaleStatusActive,
	}

	if err := s.api.CreateSale(ctx, sale); err != nil {
		s.compensateStockDeduction(ctx, product)
		return nil, fmt.Errorf("failed to record sale for product %d: %w", product.ID, err)
	}

	if err := s.idem.Mark(ctx, req.IdempotencyKey, idempotencyTTL); err != nil {
		s.logger.Warn("Failed to mark idempotency key",
			zap.String("idempotency_key", req.IdempotencyKey),
			zap.Error(err))
	}

	util.SalesRecordedTotal.Inc()
	s.logger.Info("Sale recorded",
		zap.Int64("product_id", product.ID),
		zap.Int("quantity", req.Quantity),
		zap.Int("remaining", updated.Quantity))

	event := &models.SaleRecordedEvent{
		BaseEvent: baseEvent(models.EventTypeSaleRecorded),
		ProductID: product.ID,
		Quantity:  req.Quantity,
		Remaining: updated.Quantity,
	}
	if err := s.events.PublishSaleRecorded(ctx, event); err != nil {
		s.logger.Error("Failed to publish SaleRecorded event", zap.Error(err))
	}

	s.state.Refresh(ctx, models.CollectionProducts)
	s.state.Refresh(ctx, models.CollectionSales)

	return &RecordSaleResult{
		ProductID:    product.ID,
		QuantitySold: req.Quantity,
		Remaining:    updated.Quantity,
	}, nil
}

// compensateStockDeduction resubmits the pre-sale product state after the
// sale write failed, so the deduction does not survive without its sale.
func (s *Service) compensateStockDeduction(ctx context.Context, original models.Product) {
	if err := s.api.ReplaceProduct(ctx, original.ID, original); err != nil {
		s.logger.Error("Failed to compensate stock deduction",
			zap.Int64("product_id", original.ID),
			zap.Error(err))
		return
	}
	util.SalesCompensatedTotal.Inc()
	s.logger.Warn("Stock deduction rolled back after failed sale write",
		zap.Int64("product_id", original.ID))
}

// DeleteSale soft deletes a sale: the record is resubmitted with status
// "deleted" and every other field unchanged. An unknown or already deleted
// sale is a no-op. The stock deducted by the sale is not restored; sales
// are kept as historical record.
func (s *Service) DeleteSale(ctx context.Context, id int64) error {
	ctx, span := util.StartSpan(ctx, "Service.DeleteSale")
	defer span.End()

	sale, ok := s.state.FindSale(id)
	if !ok || !sale.Active() {
		return nil
	}

	cancelled := sale
	cancelled.Status = models.SaleStatusDeleted

	if err := s.api.ReplaceSale(ctx, id, cancelled); err != nil {
		return fmt.Errorf("failed to cancel sale %d: %w", id, err)
	}

	util.SalesCancelledTotal.Inc()
	s.logger.Info("Sale cancelled",
		zap.Int64("sale_id", id),
		zap.Int64("product_id", sale.ProductID))

	event := &models.SaleCancelledEvent{
		BaseEvent: baseEvent(models.EventTypeSaleCancelled),
		SaleID:    id,
		ProductID: sale.ProductID,
	}
	if err := s.events.PublishSaleCancelled(ctx, event); err != nil {
		s.logger.Error("Failed to publish SaleCancelled event", zap.Error(err))
	}

	s.state.Refresh(ctx, models.CollectionSales)
	return nil
}

// StockUpdateRequest adjusts a product's quantity outside of a sale.
type StockUpdateRequest struct {
	ProductID int64
	// Type is "add" to raise stock; anything else deducts.
	Type     string
	Quantity int
}

// UpdateStock applies a manual stock adjustment. Additions raise the
// quantity; deductions are clamped at zero, silently discarding any excess.
// Exactly one transaction of the given type is appended either way.
func (s *Service) UpdateStock(ctx context.Context, req StockUpdateRequest) error {
	ctx, span := util.StartSpan(ctx, "Service.UpdateStock")
	defer span.End()

	if req.Quantity <= 0 {
		return ErrInvalidQuantity
	}

	product, ok := s.state.FindProduct(req.ProductID)
	if !ok {
		return ErrProductNotFound
	}

	newQuantity := product.Quantity - req.Quantity
	if req.Type == models.TransactionTypeAdd {
		newQuantity = product.Quantity + req.Quantity
	} else if newQuantity < 0 {
		newQuantity = 0
	}

	updated := product
	updated.Quantity = newQuantity
	updated.Transactions = appendTransaction(product.Transactions, models.Transaction{
		Type:     req.Type,
		Quantity: req.Quantity,
		Date:     time.Now().UTC(),
	})

	if err := s.api.ReplaceProduct(ctx, product.ID, updated); err != nil {
		return fmt.Errorf("failed to adjust stock for product %d: %w", product.ID, err)
	}

	util.StockAdjustmentsTotal.WithLabelValues(adjustmentLabel(req.Type)).Inc()
	s.logger.Info("Stock adjusted",
		zap.Int64("product_id", product.ID),
		zap.String("type", req.Type),
		zap.Int("quantity", req.Quantity),
		zap.Int("remaining", newQuantity))

	event := &models.StockAdjustedEvent{
		BaseEvent: baseEvent(models.EventTypeStockAdjusted),
		ProductID: product.ID,
		Type:      req.Type,
		Quantity:  req.Quantity,
		Remaining: newQuantity,
	}
	if err := s.events.PublishStockAdjusted(ctx, event); err != nil {
		s.logger.Error("Failed to publish StockAdjusted event", zap.Error(err))
	}

	s.state.Refresh(ctx, models.CollectionProducts)
	return nil
}

// AddCustomer submits a new customer record.
func (s *Service) AddCustomer(ctx context.Context, customer models.Customer) error {
	ctx, span := util.StartSpan(ctx, "Service.AddCustomer")
	defer span.End()

	if err := customer.Validate(); err != nil {
		return err
	}

	customer.ID = 0
	if err := s.api.CreateCustomer(ctx, customer); err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	s.state.Refresh(ctx, models.CollectionCustomers)
	return nil
}

// UpdateCustomer overwrites the full customer record at id.
func (s *Service) UpdateCustomer(ctx context.Context, id int64, customer models.Customer) error {
	ctx, span := util.StartSpan(ctx, "Service.UpdateCustomer")
	defer span.End()

	if err := customer.Validate(); err != nil {
		return err
	}

	if err := s.api.ReplaceCustomer(ctx, id, customer); err != nil {
		return fmt.Errorf("failed to update customer %d: %w", id, err)
	}

	s.state.Refresh(ctx, models.CollectionCustomers)
	return nil
}

// DeleteCustomer removes the customer record.
func (s *Service) DeleteCustomer(ctx context.Context, id int64) error {
	ctx, span := util.StartSpan(ctx, "Service.DeleteCustomer")
	defer span.End()

	if err := s.api.DeleteCustomer(ctx, id); err != nil {
		return fmt.Errorf("failed to delete customer %d: %w", id, err)
	}

	s.state.Refresh(ctx, models.CollectionCustomers)
	return nil
}

// appendTransaction copies the ledger before appending so the prior entries
// of the cached product are never aliased or mutated.
func appendTransaction(transactions []models.Transaction, txn models.Transaction) []models.Transaction {
	ledger := make([]models.Transaction, 0, len(transactions)+1)
	ledger = append(ledger, transactions...)
	return append(ledger, txn)
}

func adjustmentLabel(transactionType string) string {
	if transactionType == models.TransactionTypeAdd {
		return models.TransactionTypeAdd
	}
	return models.TransactionTypeDeduct
}

func baseEvent(eventType string) models.BaseEvent {
	return models.BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
	}
}

func (s *Service) publishProductCreated(ctx context.Context, product models.Product) {
	event := &models.ProductCreatedEvent{
		BaseEvent: baseEvent(models.EventTypeProductCreated),
		ProductID: product.ID,
		Name:      product.Name,
		Quantity:  product.Quantity,
	}
	if err := s.events.PublishProductCreated(ctx, event); err != nil {
		s.logger.Error("Failed to publish ProductCreated event", zap.Error(err))
	}
}

func (s *Service) publishProductUpdated(ctx context.Context, id int64, quantity int) {
	event := &models.ProductUpdatedEvent{
		BaseEvent: baseEvent(models.EventTypeProductUpdated),
		ProductID: id,
		Quantity:  quantity,
	}
	if err := s.events.PublishProductUpdated(ctx, event); err != nil {
		s.logger.Error("Failed to publish ProductUpdated event", zap.Error(err))
	}
}

func (s *Service) publishProductDeleted(ctx context.Context, id int64) {
	event := &models.ProductDeletedEvent{
		BaseEvent: baseEvent(models.EventTypeProductDeleted),
		ProductID: id,
	}
	if err := s.events.PublishProductDeleted(ctx, event); err != nil {
		s.logger.Error("Failed to publish ProductDeleted event", zap.Error(err))
	}
}
