package worker

import (
	"context"
	"log"

	"github.com/Thabana01/wings-cafe-Inventory/internal/broker"
	"github.com/Thabana01/wings-cafe-Inventory/internal/models"
	"github.com/Thabana01/wings-cafe-Inventory/internal/util"

	"go.uber.org/zap"
)

// LowStockWatcher consumes inventory events and flags products whose
// remaining quantity falls to or under the threshold. It only observes;
// restocking stays a manual operation.
type LowStockWatcher struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	threshold    int
	logger       *zap.Logger
}

// NewLowStockWatcher creates a watcher over the given consumer.
func NewLowStockWatcher(consumer *broker.Consumer, threshold int) *LowStockWatcher {
	w := &LowStockWatcher{
		consumer:     consumer,
		eventHandler: broker.NewEventHandler(),
		threshold:    threshold,
		logger:       util.GetLogger(),
	}

	w.eventHandler.OnSaleRecorded(func(ctx context.Context, event *models.SaleRecordedEvent) error {
		w.observe(event.ProductID, event.Remaining)
		return nil
	})
	w.eventHandler.OnStockAdjusted(func(ctx context.Context, event *models.StockAdjustedEvent) error {
		w.observe(event.ProductID, event.Remaining)
		return nil
	})

	return w
}

func (w *LowStockWatcher) observe(productID int64, remaining int) {
	if !models.LowStock(remaining, w.threshold) {
		return
	}
	util.LowStockProductsTotal.Inc()
	w.logger.Warn("Product low on stock",
		zap.Int64("product_id", productID),
		zap.Int("remaining", remaining),
		zap.Int("threshold", w.threshold))
}

// Start starts the watcher
func (w *LowStockWatcher) Start(ctx context.Context) error {
	log.Println("Starting low-stock watcher...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the watcher
func (w *LowStockWatcher) Stop() error {
	log.Println("Stopping low-stock watcher...")
	return w.consumer.Close()
}
